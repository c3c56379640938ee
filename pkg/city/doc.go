// Package city models a rectangular city grid whose cells are empty, blocked,
// covered by a tower signal, or hosting a tower.
//
// # Overview
//
// A [Grid] is created once with every cell [Empty]. [Grid.PopulateBlocked]
// then turns a fixed number of cells into [Blocked] buildings by uniform
// random sampling, resampling whenever it hits a cell that is already
// blocked. The number of blocked cells is always floor(rows*cols*fraction),
// so a seeded random source makes the whole grid reproducible.
//
// After creation only tower placement mutates the grid:
// [Grid.MarkTowerAndCoverage] writes [Tower] at the tower coordinate and
// [Signal] on every other non-blocked cell of its coverage window.
//
// # Coverage Window
//
// The coverage window of a coordinate is the square of cells within Chebyshev
// distance radius, clipped to the grid bounds:
//
//	radius 1 around (2,2):     radius 1 around (0,0):
//
//	. . . . .                  T + . . .
//	. + + + .                  + + . . .
//	. + T + .                  . . . . .
//	. + + + .
//	. . . . .
//
// # Storage
//
// Cells are kept in a row-major flat slice. Callers read the state through
// [Grid.At], [Grid.Cells] and [Grid.Count]; the layout is never exposed.
//
// # Text Notation
//
// [Parse] and [Grid.String] use one rune per cell:
//
//	.  Empty
//	#  Blocked
//	+  Signal
//	T  Tower
//
// The same notation is used by the JSON encoding, which stores one string
// per row.
package city

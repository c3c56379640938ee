// Package coverage selects tower locations on a city grid with a greedy
// maximum-gain heuristic.
//
// What:
//
//   - Candidates are the Blocked cells of a [city.Grid] (towers stand on buildings).
//   - The gain of a candidate is the number of cells in its coverage window
//     that no selected tower covers yet. Blocked cells in the window count
//     toward the gain even though they never receive a signal.
//   - Each round scans the grid row-major and picks the candidate with the
//     strictly largest gain, so ties resolve to the first candidate scanned.
//   - Rounds repeat until no candidate has a positive gain.
//
// Why:
//
//   - The scan order and the strict comparison make the result a pure
//     function of the grid and radius; two runs over the same grid select the
//     same towers in the same order.
//
// Complexity (N = rows*cols, B = blocked cells, W = (2R+1)²):
//
//   - Time:   O(T·B·W) for T selected towers, bounded by O(N·B·W).
//   - Memory: O(N) for the transient coverage map.
//
// Usage:
//
//	towers, err := coverage.Optimize(grid, 5)
//
// [Select] runs the same search without touching the grid, and [Summarize]
// reports how much of the open area ended up under signal.
package coverage

// Package io provides JSON import and export for planning results.
//
// # JSON Format
//
// A plan records the city after tower placement, the towers in selection
// order and the relay path, together with the parameters that produced them:
//
//	{
//	  "version": 1,
//	  "seed": 42,
//	  "block_coverage": 0.3,
//	  "radius": 1,
//	  "grid": {"rows": 4, "cols": 4, "cells": ["T+..", "++..", "..++", "..+T"]},
//	  "towers": [[0, 0], [3, 3]],
//	  "path": [[0, 0], [3, 3]],
//	  "coverage": {"cells": 16, "blocked": 0, "signal": 6, "towers": 2, "empty": 8, "ratio": 0.43}
//	}
//
// Cells use the text notation of the city package: '.' empty, '#' blocked,
// '+' signal and 'T' tower. Coordinates are [row, col] pairs.
//
// # Import
//
// Use [ImportJSON] to read a plan from a file path, or [ReadJSON] to read
// from any io.Reader. Both check that every tower sits on a Tower cell and
// that every path hop is one of the towers.
//
// # Export
//
// Use [ExportJSON] to write a plan to a file, or [WriteJSON] to write to any
// io.Writer. The pipeline cache stores plans in the same format.
package io

// Package relay finds hop-minimal relay paths between signal towers.
//
// What
//
//   - [NewRangeGraph] links every pair of distinct towers whose row and column
//     offsets are both at most 2*radius+1 ([InRange]). This bounding-box test
//     is a coarse stand-in for "close enough to relay a signal"; it does not
//     check that the coverage windows actually overlap.
//   - Each tower's neighbor list keeps the order of the input tower list.
//   - [RangeGraph.BFS] walks the graph breadth-first from a start tower,
//     recording visit order, hop depth and parent links.
//   - [FindPath] combines the two: it rebuilds the graph on every call and
//     returns the tower sequence from start to end, or an empty path when the
//     two towers sit in different components.
//
// Why
//
//	Within range every link is assumed equally reliable, so the most
//	reliable route is the one with the fewest relays. Plain BFS is therefore
//	the right optimality criterion; no edge weights are involved.
//
// Determinism
//
//	Neighbors are visited in input order and parents are fixed on first
//	discovery, so the same tower list always yields the same path.
//
// Complexity (T = towers, E = range edges)
//
//   - Graph construction: O(T²)
//   - BFS:                O(T + E)
//
// Errors
//
//   - INVALID_ARGUMENT      if start or end is not one of the towers.
//   - INVALID_CONFIGURATION if radius is negative.
package relay

// Package engine implements the projection-and-grouping core that turns
// the 3D geometry of building elements into linear dimension chains on a
// 2D drawing view.
//
// # Pipeline
//
// One view is processed by a single pass through six pure stages:
//
//	CollectCandidates → GroupByDirection → MergeCollinear →
//	SelectRepresentatives → ComposeChains → Done
//
// Candidates are built from an ElementProvider (the host-side geometry
// snapshot) and a ViewContext (the view's projection basis). Linear items
// are partitioned into parallel buckets, each bucket is split into
// collinear groups (items on the same infinite 2D line within an adaptive
// tolerance), near-coincident members of a group are collapsed to a single
// representative, and each group with at least two representatives yields
// one dimension chain along the group's line.
//
// Every stage is pure with respect to the previous stage's output. A view
// that yields zero chains is a normal outcome, not an error: sparse views,
// views with nothing selected, and views whose elements all lack usable
// geometry simply produce an empty result.
//
// # Determinism
//
// Elements are enumerated in ascending ID order, and the first item placed
// in a parallel bucket fixes the bucket's canonical direction. Given the
// same snapshot and settings, a pass always produces the same chains.
//
// The engine holds no state across passes and is safe to run concurrently
// on different views, though providers bound to a single-threaded host
// session typically serialize calls themselves.
package engine

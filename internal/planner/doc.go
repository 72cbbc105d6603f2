// Package planner decides, from pixel dimensions alone, whether a JPEG is
// reduced and how many fixed-ratio downscale passes it gets. The result is a
// Plan that the reducer executes and the preview prints.
//
// The decision uses two different tests on purpose:
//   - skip when BOTH dimensions would drop below their minimum after one pass
//   - keep halving while EITHER dimension would still exceed its minimum
//
// An image sitting exactly on the boundary (a side equal to factor×minimum,
// the other not larger) therefore fails the skip test and also gets zero
// passes. It is re-encoded at the target quality without being resized.
package planner

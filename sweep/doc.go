// Package sweep splits field sweeps into monotonic branches and merges
// branches back into a single curve.
//
// A magnetoresistance measurement drives the applied field from one extreme
// down to the opposite extreme and back, so the recorded table contains two
// passes over the same field range. Hysteresis analysis works on the two
// passes separately; the split point is the turning point of the sweep:
//
//   - The turning point is the first row holding the minimum field value
//   - The first branch runs from the start up to and including that row
//   - The second branch is the remainder (possibly empty)
//   - Both branches are re-sorted to ascending field order
//
// # Usage
//
// Split a recorded sweep and merge the branches again:
//
//	before, after, err := sweep.Split(c, curve.DefaultFieldColumn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	merged, _ := sweep.Merge(before, after, curve.DefaultFieldColumn)
package sweep

// Package feature computes scalar comparison metrics over the two branches
// of a magnetoresistance hysteresis sweep.
//
// The metrics quantify how far the outbound and return branches of a sweep
// diverge: the pseudo-area enclosed between them, sample-to-sample
// change-rate statistics, sign-change counts, the full-sweep value range,
// the local slope of a branch, and the pointwise deviation and ratio at a
// fractional position along the aligned branches.
//
// All functions are pure and leave their inputs untouched. Metrics that
// need both branches on a common field grid align them internally via the
// align package. The only randomness is the down-sampling draw in
// PseudoArea, seeded per call with SampleSeed, so every function is
// reproducible.
//
// Undefined outcomes (division by zero in a change rate, a derivative over
// duplicate field values) surface as NaN or infinite values, not as
// errors; structurally invalid input (missing column, empty branch,
// fraction outside [0, 1]) fails with a sentinel error.
//
// # Usage
//
// Split a sweep and run the full battery:
//
//	before, after, err := sweep.Split(c, curve.DefaultFieldColumn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	set, err := feature.Extract(before, after, feature.WithFraction(0.25))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("pseudo-area %.3f, range %.3f\n", set.PseudoArea, set.ValueRange)
//
// Each metric is also available as a standalone function taking explicit
// column names.
package feature

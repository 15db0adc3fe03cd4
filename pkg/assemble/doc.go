// Package assemble turns a validated model into network-construction calls.
//
// A solver front end implements [Builder]. [Assemble] drives it entity by
// entity and resolves every name on the way, so a Builder only ever sees
// indices, positions and curves:
//
//   - joints get the position of their node and the ids of their lists
//   - materials get exactly the parameters their law takes
//   - data tables are split into (time, value) pairs
//   - segments get their material index and data-table curve
//   - Solve gets the inlet curve and the output selection
//
// [Recorder] is a Builder that keeps every call in a [Plan], which can be
// written as JSON for inspection:
//
//	plan, err := assemble.BuildPlan(m)
//	if err != nil {
//	    return err
//	}
//	return plan.WriteJSON(os.Stdout)
package assemble

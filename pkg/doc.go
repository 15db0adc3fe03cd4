// Package pkg holds the libraries behind netinput, the input pipeline of a
// one-dimensional hemodynamics solver.
//
// # Overview
//
// A vascular network is described as nodes, joints, segments, materials,
// data tables and the solver settings. netinput reads that description in
// either of two formats, checks it, and produces the ordered construction
// calls that build the network inside a solver.
//
//	legacy text / JSON
//	        ↓
//	  [legacy] / [io]       parse into a [model.Model]
//	        ↓
//	    [validate]          consistency checks, warnings
//	        ↓
//	  [echo] / [io]         human-readable and JSON echoes
//	        ↓
//	    [assemble]          construction calls for a solver
//
// # Quick Start
//
// Read, check and assemble a legacy network:
//
//	f, _ := os.Open("bifurcation.in")
//	m, err := legacy.Read(f, legacy.Options{})
//	if err != nil {
//	    return err
//	}
//	report, err := validate.Validate(m, validate.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, w := range report.Warnings {
//	    fmt.Println(w.Message)
//	}
//	plan, err := assemble.BuildPlan(m)
//
// The same steps with caching and logging are available as one call:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, "bifurcation.in", pipeline.Options{EchoDir: "out"})
//
// # Packages
//
// [model] is the canonical in-memory network: entity types, the output
// settings and name lookups shared by every other package.
//
// [legacy] tokenizes and parses the keyword-per-line format and writes it
// back out. [io] reads and writes the JSON encoding.
//
// [validate] checks unique names, areas, profiles, segment lengths,
// references and joint mappings, and reports warnings that do not stop a
// run. [assemble] resolves references and emits solver construction calls
// through a Builder, or records them as a serializable Plan.
//
// [echo] writes the human-readable listing a solver run leaves next to its
// results. [topology] draws the network as a Graphviz diagram.
//
// [pipeline] chains these stages with [cache] and the [observability] hooks.
// [errors] carries the error codes shared by all stages and [buildinfo]
// reports the build.
package pkg

// Package model defines the canonical in-memory description of a
// one-dimensional vascular network.
//
// # Overview
//
// A [Model] is the single parse target of both input encodings (the legacy
// keyword format in package legacy and the structured JSON format in package
// io). It aggregates:
//
//   - Nodes: named 3-D points
//   - Joints: branching points tying a node to an inlet and an outlet
//     segment list
//   - Segment lists: the named JOINTINLET / JOINTOUTLET id sequences
//   - Materials: pressure-area laws ([OlufsenLaw], [LinearLaw])
//   - Data tables: flat numeric sequences read as (time, value) pairs
//   - Segments: tubular edges between two nodes with a spatial [Profile]
//   - Solver options and optional output settings
//
// # Lifecycle
//
// Parsers append entities in input order. Once a parser returns, the model is
// treated as read-only by validation, serialization and assembly. Entities
// are never removed individually.
//
// # Material Laws
//
// [Law] is a closed sum type. Code that needs the parameter count switches
// over the concrete law:
//
//	switch law := mat.Law.(type) {
//	case model.OlufsenLaw:
//	    // three parameters
//	case model.LinearLaw:
//	    // one parameter
//	}
package model

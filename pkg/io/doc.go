// Package io provides JSON import and export for network models.
//
// # Overview
//
// This package converts a [model.Model] to and from the structured network
// document. The format is designed for:
//
//   - Lossless round trips: export, re-import and compare equal
//   - Deterministic bytes, so exported files can be diffed and fixture-tested
//   - Conversion from the line-oriented format in
//     [github.com/vascnet/netinput/pkg/legacy]
//
// # JSON Format
//
// The document has one optional string and six required sections:
//
//	{
//	  "modelName": "bifurcation",
//	  "solverOptions": {"timeStep": 0.001, "stepSize": 50, ...},
//	  "materials": [{"name": "MAT1", "type": "OLUFSEN", ...}],
//	  "nodes": [{"name": "0", "x": 0, "y": 0, "z": 0}],
//	  "joints": [{"joint": {...}, "jointInlet": {...}, "jointOutlet": {...}}],
//	  "segments": [{"name": "seg0", "id": 0, "length": 8.6, ...}],
//	  "dataTables": [{"name": "R_VALS", "type": "LIST", "values": [0, 991.36]}]
//	}
//
// Each joints entry groups a joint with its inlet and outlet segment lists:
//
//	{
//	  "joint": {"id": "J1", "associatedNode": "1", "inletName": "IN", "outletName": "OUT"},
//	  "jointInlet": {"name": "IN", "totalSegments": 1, "segments": [0]},
//	  "jointOutlet": {"name": "OUT", "totalSegments": 2, "segments": [1, 2]}
//	}
//
// # Segment Geometry
//
// A segment either carries the scalar triple length, inletArea and
// outletArea, or a "spatialCharacteristics" array of {"z", "area"} samples.
// The exporter writes the triple whenever the profile has exactly two
// samples starting at z = 0 and the sample array otherwise.
//
// # Import
//
// Use [ImportJSON] to read a model from a file path, [ReadJSON] to read from
// any io.Reader, or [ParseJSON] for bytes already in memory:
//
//	m, err := io.ImportJSON("network.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Field access is by name through gjson, so unknown keys are ignored and
// key order in the input does not matter. Errors are coded (see
// [github.com/vascnet/netinput/pkg/errors]) and name the section, the entry
// index and the field that failed. Import does not check cross-references;
// use [github.com/vascnet/netinput/pkg/validate] for that.
//
// # Export
//
// Use [ExportJSON] to write a model to a file, [WriteJSON] to write to any
// io.Writer, or [MarshalJSON] to get the bytes.
//
// [model.Model]: github.com/vascnet/netinput/pkg/model.Model
package io

// Package modeltest provides reference networks shared by the parser,
// serializer, validator and assembler tests.
//
// Every fixture is returned as a fresh value so tests may modify it freely.
package modeltest

import "github.com/vascnet/netinput/pkg/model"

// SimpleArteryLegacy is a single-vessel network with a resistance outlet.
const SimpleArteryLegacy = `# ================================
# SIMPLE ARTERY MODEL - UNITS IN CGS
# ================================

MODEL simpleArtery_Res_

NODE 0 0.0 0.0 0.0
NODE 1 0.0 0.0 -20.0

# SEGMENT name id length elements in out inArea outArea flow mat loss angle up branch bound table
SEGMENT ARTERY 0 20.0 50 0 1 2.0 2.0 0.0 MAT1 NONE 0.0 0 0 RESISTANCE RESTABLE

DATATABLE RESTABLE LIST
0.0 100.0
ENDDATATABLE

DATATABLE INLETDATA LIST
0.0 200.0
10.0 200.0
ENDDATATABLE

MATERIAL MAT1 OLUFSEN 1.06 0.04 113324.0 1.0 2.0e7 -22.5267 8.65e5

OUTPUT TEXT

SOLVEROPTIONS 0.01 10 1000 4 INLETDATA FLOW 1.0e-6 1 1
`

// SimpleArtery returns the model described by [SimpleArteryLegacy].
func SimpleArtery() *model.Model {
	return &model.Model{
		Name: "simpleArtery_Res_",
		Nodes: []model.Node{
			{Name: "0", X: 0, Y: 0, Z: 0},
			{Name: "1", X: 0, Y: 0, Z: -20},
		},
		Materials: []model.Material{{
			Name:      "MAT1",
			Density:   1.06,
			Viscosity: 0.04,
			PRef:      113324.0,
			Exponent:  1.0,
			Law:       model.OlufsenLaw{K1: 2.0e7, K2: -22.5267, K3: 8.65e5},
		}},
		DataTables: []model.DataTable{
			{Name: "RESTABLE", Kind: "LIST", Values: []float64{0, 100}},
			{Name: "INLETDATA", Kind: "LIST", Values: []float64{0, 200, 10, 200}},
		},
		Segments: []model.Segment{{
			Name:         "ARTERY",
			ID:           0,
			Elements:     50,
			InNode:       0,
			OutNode:      1,
			Profile:      model.SimpleProfile(20.0, 2.0, 2.0),
			Material:     "MAT1",
			LossType:     "NONE",
			BoundaryType: "RESISTANCE",
			DataTable:    "RESTABLE",
		}},
		Solver: model.SolverOptions{
			TimeStep:       0.01,
			StepSize:       10,
			MaxStep:        1000,
			QuadPoints:     4,
			InletDataTable: "INLETDATA",
			BoundaryType:   "FLOW",
			Tolerance:      1.0e-6,
			UseIV:          1,
			UseStab:        1,
		},
		Output: &model.OutputSettings{Type: model.OutputText},
	}
}

// BifurcationLegacy is a three-vessel network with one junction.
const BifurcationLegacy = `MODEL results_bifurcation_R_

NODE 0 0.0 0.0 0.0
NODE 1 0.0 0.0 -8.6
NODE 2 0.0 -3.25280917510326 -7.85297602634594
NODE 3 0.0 3.25280917510326 -7.85297602634594

JOINT JOINT1 1 INSEGS OUTSEGS
JOINTINLET INSEGS 1 0
JOINTOUTLET OUTSEGS 2 1 2

SEGMENT seg0 0 8.6 50 0 1 2.32352192659501 2.32352192659501 0.0 MAT1 NONE 0.0 0 0 NOBOUND NONE
SEGMENT seg1 1 8.5 50 1 2 1.13097335529233 1.13097335529233 0.0 MAT1 NONE 0.0 0 0 RESISTANCE R_VALS
SEGMENT seg2 2 8.5 50 1 3 1.13097335529233 1.13097335529233 0.0 MAT1 NONE 0.0 0 0 RESISTANCE R_VALS

DATATABLE R_VALS LIST
0.0 991.36
ENDDATATABLE

DATATABLE STEADY_FLOW LIST
0.0 7.985
1.0 7.985
ENDDATATABLE

DATATABLE PULS_FLOW LIST
0.0 0.0
0.019668108360095 -4.11549971450822
0.055247073448669 -7.16517105402019
ENDDATATABLE

MATERIAL MAT1 OLUFSEN 1.06 0.04 0.0 2.0 1.0e15 -20.0 1.0e9

SOLVEROPTIONS 0.001087 50 1000 2 STEADY_FLOW FLOW 1.0e-6 1 1
`

// Bifurcation returns the model described by [BifurcationLegacy].
func Bifurcation() *model.Model {
	seg := func(name string, id, in, out int64, length, area float64, bound, table string) model.Segment {
		return model.Segment{
			Name:         name,
			ID:           id,
			Elements:     50,
			InNode:       in,
			OutNode:      out,
			Profile:      model.SimpleProfile(length, area, area),
			Material:     "MAT1",
			LossType:     "NONE",
			BoundaryType: bound,
			DataTable:    table,
		}
	}

	return &model.Model{
		Name: "results_bifurcation_R_",
		Nodes: []model.Node{
			{Name: "0", X: 0, Y: 0, Z: 0},
			{Name: "1", X: 0, Y: 0, Z: -8.6},
			{Name: "2", X: 0, Y: -3.25280917510326, Z: -7.85297602634594},
			{Name: "3", X: 0, Y: 3.25280917510326, Z: -7.85297602634594},
		},
		Joints: []model.Joint{
			{Name: "JOINT1", Node: "1", InletList: "INSEGS", OutletList: "OUTSEGS"},
		},
		InletLists: []model.SegmentList{
			{Name: "INSEGS", Count: 1, Segments: []int64{0}},
		},
		OutletLists: []model.SegmentList{
			{Name: "OUTSEGS", Count: 2, Segments: []int64{1, 2}},
		},
		Materials: []model.Material{{
			Name:      "MAT1",
			Density:   1.06,
			Viscosity: 0.04,
			PRef:      0,
			Exponent:  2.0,
			Law:       model.OlufsenLaw{K1: 1.0e15, K2: -20, K3: 1.0e9},
		}},
		DataTables: []model.DataTable{
			{Name: "R_VALS", Kind: "LIST", Values: []float64{0, 991.36}},
			{Name: "STEADY_FLOW", Kind: "LIST", Values: []float64{0, 7.985, 1, 7.985}},
			{Name: "PULS_FLOW", Kind: "LIST", Values: []float64{
				0, 0,
				0.019668108360095, -4.11549971450822,
				0.055247073448669, -7.16517105402019,
			}},
		},
		Segments: []model.Segment{
			seg("seg0", 0, 0, 1, 8.6, 2.32352192659501, "NOBOUND", model.NoneDataTable),
			seg("seg1", 1, 1, 2, 8.5, 1.13097335529233, "RESISTANCE", "R_VALS"),
			seg("seg2", 2, 1, 3, 8.5, 1.13097335529233, "RESISTANCE", "R_VALS"),
		},
		Solver: model.SolverOptions{
			TimeStep:       0.001087,
			StepSize:       50,
			MaxStep:        1000,
			QuadPoints:     2,
			InletDataTable: "STEADY_FLOW",
			BoundaryType:   "FLOW",
			Tolerance:      1.0e-6,
			UseIV:          1,
			UseStab:        1,
		},
	}
}

package io

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model"
	"github.com/vascnet/netinput/pkg/model/modeltest"
)

func TestImportJSONFixture(t *testing.T) {
	got, err := ImportJSON(filepath.Join("testdata", "bifurcation.json"))
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if diff := cmp.Diff(modeltest.Bifurcation(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ImportJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("ImportJSON() error = %v, want os.ErrNotExist", err)
	}
}

// minimalDoc returns a valid document with one of everything, in which the
// caller replaces one fragment.
func minimalDoc(replace ...string) string {
	doc := `{
  "modelName": "m",
  "nodes": [{"name": "0", "x": 0, "y": 0, "z": 0}, {"name": "1", "x": 0, "y": 0, "z": -10}],
  "joints": [],
  "materials": [{"name": "MAT1", "type": "LINEAR", "density": 1.06, "viscosity": 0.04, "pRef": 0, "exponent": 1, "param1": 4e6, "param2": 0, "param3": 0}],
  "dataTables": [{"name": "FLOW", "type": "LIST", "values": [0, 1, 1, 1]}],
  "segments": [{"name": "S", "id": 0, "length": 10, "totalElements": 20, "inNode": 0, "outNode": 1,
    "inletArea": 1.5, "outletArea": 1.5, "flow": 0, "materialName": "MAT1", "lossType": "NONE",
    "branchAngle": 0, "upstreamSegment": 0, "branchSegment": 0, "boundaryType": "NOBOUND", "dataTableName": "NONE"}],
  "solverOptions": {"timeStep": 0.01, "stepSize": 10, "maxStep": 100, "quadPoints": 2,
    "inletDataTableName": "FLOW", "boundaryType": "FLOW", "convergenceTolerance": 1e-6, "useIV": 1, "useStab": 0}
}`
	for i := 0; i+1 < len(replace); i += 2 {
		doc = strings.Replace(doc, replace[i], replace[i+1], 1)
	}
	return doc
}

func TestParseJSONMinimal(t *testing.T) {
	m, err := ParseJSON([]byte(minimalDoc()))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	want := &model.Model{
		Name: "m",
		Nodes: []model.Node{
			{Name: "0"},
			{Name: "1", Z: -10},
		},
		Materials: []model.Material{
			{Name: "MAT1", Density: 1.06, Viscosity: 0.04, Exponent: 1, Law: model.LinearLaw{EHR: 4e6}},
		},
		DataTables: []model.DataTable{{Name: "FLOW", Kind: "LIST", Values: []float64{0, 1, 1, 1}}},
		Segments: []model.Segment{{
			Name: "S", Elements: 20, OutNode: 1,
			Profile:  model.SimpleProfile(10, 1.5, 1.5),
			Material: "MAT1", LossType: "NONE", BoundaryType: "NOBOUND", DataTable: "NONE",
		}},
		Solver: model.SolverOptions{
			TimeStep: 0.01, StepSize: 10, MaxStep: 100, QuadPoints: 2,
			InletDataTable: "FLOW", BoundaryType: "FLOW", Tolerance: 1e-6, UseIV: 1,
		},
	}
	if diff := cmp.Diff(want, m, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ParseJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONOptionalFields(t *testing.T) {
	t.Run("model name defaults to empty", func(t *testing.T) {
		m, err := ParseJSON([]byte(minimalDoc(`"modelName": "m",`, "")))
		if err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if m.Name != "" {
			t.Errorf("Name = %q, want empty", m.Name)
		}
	})

	t.Run("output type", func(t *testing.T) {
		m, err := ParseJSON([]byte(minimalDoc(`"useStab": 0}`, `"useStab": 0, "outputType": "vtk", "vtkOutputType": 1}`)))
		if err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		one := 1
		want := &model.OutputSettings{Type: model.OutputVTK, VTKSubtype: &one}
		if diff := cmp.Diff(want, m.Output); diff != "" {
			t.Errorf("Output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("output type NONE", func(t *testing.T) {
		m, err := ParseJSON([]byte(minimalDoc(`"useStab": 0}`, `"useStab": 0, "outputType": "None"}`)))
		if err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if m.Output != nil {
			t.Errorf("Output = %+v, want nil", m.Output)
		}
	})

	t.Run("spatial characteristics", func(t *testing.T) {
		m, err := ParseJSON([]byte(minimalDoc(
			`"length": 10, `, ``,
			`"inletArea": 1.5, "outletArea": 1.5,`,
			`"spatialCharacteristics": [{"z": 0, "area": 1.5}, {"z": 4, "area": 1.2}, {"z": 10, "area": 1.0}],`,
		)))
		if err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		want := model.Profile{Samples: []model.Sample{{Z: 0, Area: 1.5}, {Z: 4, Area: 1.2}, {Z: 10, Area: 1.0}}}
		if diff := cmp.Diff(want, m.Segments[0].Profile); diff != "" {
			t.Errorf("Profile mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("olufsen parameters", func(t *testing.T) {
		m, err := ParseJSON([]byte(minimalDoc(
			`"type": "LINEAR"`, `"type": "olufsen"`,
			`"param1": 4e6, "param2": 0, "param3": 0`, `"param1": 2e7, "param2": -22.5, "param3": 8.65e5`,
		)))
		if err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		want := model.OlufsenLaw{K1: 2e7, K2: -22.5, K3: 8.65e5}
		if m.Materials[0].Law != want {
			t.Errorf("Law = %#v, want %#v", m.Materials[0].Law, want)
		}
	})

	t.Run("linear ignores trailing parameters", func(t *testing.T) {
		m, err := ParseJSON([]byte(minimalDoc(`"param3": 0`, `"param3": 3`)))
		if err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if m.Materials[0].Params() != [3]float64{4e6, 0, 0} {
			t.Errorf("Params() = %v", m.Materials[0].Params())
		}
	})

	t.Run("integers as floats", func(t *testing.T) {
		m, err := ParseJSON([]byte(minimalDoc(`"stepSize": 10`, `"stepSize": 10.0`)))
		if err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if m.Solver.StepSize != 10 {
			t.Errorf("StepSize = %d, want 10", m.Solver.StepSize)
		}
	})
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode errors.Code
		wantMsg  string
	}{
		{
			name:     "malformed",
			doc:      `{"nodes": [`,
			wantCode: errors.ErrCodeInvalidFormat,
			wantMsg:  "malformed JSON",
		},
		{
			name:     "not an object",
			doc:      `[1, 2]`,
			wantCode: errors.ErrCodeInvalidFormat,
			wantMsg:  "not a JSON object",
		},
		{
			name:     "missing nodes",
			doc:      minimalDoc(`"nodes"`, `"vertices"`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "nodes": missing section`,
		},
		{
			name:     "joints not an array",
			doc:      minimalDoc(`"joints": []`, `"joints": {}`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "joints": want array, got object`,
		},
		{
			name:     "missing node field",
			doc:      minimalDoc(`"name": "1", "x": 0,`, `"name": "1",`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "nodes": entry 1: missing field "x"`,
		},
		{
			name:     "wrong field type",
			doc:      minimalDoc(`"x": 0, "y": 0, "z": -10`, `"x": "0", "y": 0, "z": -10`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "nodes": entry 1: field "x": want number, got string`,
		},
		{
			name:     "model name not a string",
			doc:      minimalDoc(`"modelName": "m"`, `"modelName": 7`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `modelName`,
		},
		{
			name:     "missing segment length",
			doc:      minimalDoc(`"length": 10, `, ``),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "segments": entry 0: missing field "length"`,
		},
		{
			name:     "unknown material type",
			doc:      minimalDoc(`"type": "LINEAR"`, `"type": "ELASTIC"`),
			wantCode: errors.ErrCodeInvalidValue,
			wantMsg:  `parse "materials": entry 0: material MAT1: unknown material type`,
		},
		{
			name:     "olufsen missing param3",
			doc:      minimalDoc(`"type": "LINEAR"`, `"type": "OLUFSEN"`, `, "param3": 0`, ``),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `missing field "param3"`,
		},
		{
			name:     "linear missing param2",
			doc:      minimalDoc(`"param2": 0, `, ``),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "materials": entry 0: missing field "param2"`,
		},
		{
			name:     "data table value not a number",
			doc:      minimalDoc(`"values": [0, 1, 1, 1]`, `"values": [0, 1, "x", 1]`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "dataTables": entry 0: field "values": item 2: want number, got string`,
		},
		{
			name:     "missing solver options",
			doc:      minimalDoc(`"solverOptions"`, `"solver"`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "solverOptions": missing section`,
		},
		{
			name:     "unknown output type",
			doc:      minimalDoc(`"useStab": 0}`, `"useStab": 0, "outputType": "HDF5"}`),
			wantCode: errors.ErrCodeInvalidValue,
			wantMsg:  `unknown output type`,
		},
		{
			name:     "bad vtk subtype",
			doc:      minimalDoc(`"useStab": 0}`, `"useStab": 0, "outputType": "VTK", "vtkOutputType": 3}`),
			wantCode: errors.ErrCodeInvalidValue,
			wantMsg:  `vtkOutputType must be 0 or 1`,
		},
		{
			name:     "vtk subtype without type",
			doc:      minimalDoc(`"useStab": 0}`, `"useStab": 0, "vtkOutputType": 1}`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `requires "outputType"`,
		},
		{
			name: "joint missing inlet group",
			doc: minimalDoc(`"joints": []`, `"joints": [{
				"joint": {"id": "J1", "associatedNode": "0", "inletName": "IN", "outletName": "OUT"},
				"jointOutlet": {"name": "OUT", "totalSegments": 0, "segments": []}}]`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "joints": entry 0: jointInlet: missing field "jointInlet"`,
		},
		{
			name: "joint group field missing",
			doc: minimalDoc(`"joints": []`, `"joints": [{
				"joint": {"id": "J1", "inletName": "IN", "outletName": "OUT"},
				"jointInlet": {"name": "IN", "totalSegments": 0, "segments": []},
				"jointOutlet": {"name": "OUT", "totalSegments": 0, "segments": []}}]`),
			wantCode: errors.ErrCodeInvalidStructure,
			wantMsg:  `parse "joints": entry 0: joint: missing field "associatedNode"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseJSON([]byte(tt.doc))
			if err == nil {
				t.Fatal("ParseJSON() error = nil, want error")
			}
			if m != nil {
				t.Error("ParseJSON() returned a partial model")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.wantCode, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

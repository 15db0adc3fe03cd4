package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/legacy"
	"github.com/vascnet/netinput/pkg/model"
	"github.com/vascnet/netinput/pkg/model/modeltest"
)

func TestMarshalJSONGolden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "bifurcation.json"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := MarshalJSON(modeltest.Bifurcation())
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("MarshalJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSONDeterministic(t *testing.T) {
	m := modeltest.SimpleArtery()
	first, err := MarshalJSON(m)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := MarshalJSON(m)
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("MarshalJSON() run %d differs from first run", i+1)
		}
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		model *model.Model
	}{
		{"simple artery", modeltest.SimpleArtery()},
		{"bifurcation", modeltest.Bifurcation()},
		{"empty", &model.Model{}},
		{"profile", &model.Model{
			Nodes: []model.Node{{Name: "a"}, {Name: "b", X: 3}},
			Segments: []model.Segment{{
				Name: "TAPER", OutNode: 1, DataTable: model.NoneDataTable,
				Profile: model.Profile{Samples: []model.Sample{{Z: 0, Area: 2}, {Z: 1, Area: 1.5}, {Z: 3, Area: 1}}},
			}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteJSON(tt.model, &buf); err != nil {
				t.Fatalf("WriteJSON() error = %v", err)
			}
			got, err := ReadJSON(&buf)
			if err != nil {
				t.Fatalf("ReadJSON() error = %v", err)
			}
			if diff := cmp.Diff(tt.model, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteJSONEmptyCollections(t *testing.T) {
	data, err := MarshalJSON(&model.Model{})
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	for _, key := range []string{"materials", "nodes", "joints", "segments", "dataTables"} {
		if !strings.Contains(string(data), `"`+key+`": []`) {
			t.Errorf("output missing empty %q array:\n%s", key, data)
		}
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("output contains null:\n%s", data)
	}
	if strings.Contains(string(data), "outputType") {
		t.Errorf("output without selection contains outputType:\n%s", data)
	}
}

func TestWriteJSONSegmentGeometry(t *testing.T) {
	tests := []struct {
		name    string
		profile model.Profile
		want    []string
		notWant []string
	}{
		{
			name:    "simple triple",
			profile: model.SimpleProfile(12.5, 0.8, 0.6),
			want:    []string{`"length": 12.5`, `"inletArea": 0.8`, `"outletArea": 0.6`},
			notWant: []string{"spatialCharacteristics"},
		},
		{
			name:    "sampled",
			profile: model.Profile{Samples: []model.Sample{{Z: 0, Area: 1}, {Z: 2, Area: 0.9}, {Z: 4, Area: 0.8}}},
			want:    []string{`"spatialCharacteristics": [`, `"area": 0.9`},
			notWant: []string{`"length"`, `"inletArea"`},
		},
		{
			name:    "offset start",
			profile: model.Profile{Samples: []model.Sample{{Z: 1, Area: 1}, {Z: 2, Area: 1}}},
			want:    []string{`"spatialCharacteristics": [`},
			notWant: []string{`"length"`},
		},
		{
			name:    "no samples",
			profile: model.Profile{},
			want:    []string{`"spatialCharacteristics": []`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &model.Model{Segments: []model.Segment{{Name: "S", Profile: tt.profile}}}
			data, err := MarshalJSON(m)
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			for _, s := range tt.want {
				if !strings.Contains(string(data), s) {
					t.Errorf("output missing %s:\n%s", s, data)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(string(data), s) {
					t.Errorf("output contains %s:\n%s", s, data)
				}
			}
		})
	}
}

func TestWriteJSONOutput(t *testing.T) {
	zero := 0
	m := &model.Model{Output: &model.OutputSettings{Type: model.OutputBoth, VTKSubtype: &zero}}
	data, err := MarshalJSON(m)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	for _, s := range []string{`"outputType": "BOTH"`, `"vtkOutputType": 0`} {
		if !strings.Contains(string(data), s) {
			t.Errorf("output missing %s:\n%s", s, data)
		}
	}
}

func TestWriteJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		model    *model.Model
		wantCode errors.Code
	}{
		{
			name: "fewer nodes than joints",
			model: &model.Model{
				Nodes:       []model.Node{{Name: "0"}},
				Joints:      []model.Joint{{Name: "J1", Node: "0"}, {Name: "J2", Node: "0"}},
				InletLists:  []model.SegmentList{{Name: "I1"}, {Name: "I2"}},
				OutletLists: []model.SegmentList{{Name: "O1"}, {Name: "O2"}},
			},
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name: "missing outlet list",
			model: &model.Model{
				Nodes:      []model.Node{{Name: "0"}},
				Joints:     []model.Joint{{Name: "J1", Node: "0"}},
				InletLists: []model.SegmentList{{Name: "I1"}},
			},
			wantCode: errors.ErrCodeInternal,
		},
		{
			name:     "material without law",
			model:    &model.Model{Materials: []model.Material{{Name: "M"}}},
			wantCode: errors.ErrCodeInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteJSON(tt.model, &buf)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("WriteJSON() error = %v, want code %v", err, tt.wantCode)
			}
			if buf.Len() != 0 {
				t.Errorf("WriteJSON() wrote %d bytes before failing", buf.Len())
			}
		})
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.json")
	if err := ExportJSON(modeltest.Bifurcation(), path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if diff := cmp.Diff(modeltest.Bifurcation(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ExportJSON() round trip mismatch (-want +got):\n%s", diff)
	}

	if err := ExportJSON(modeltest.Bifurcation(), filepath.Join(t.TempDir(), "missing", "net.json")); err == nil {
		t.Error("ExportJSON() into a missing directory succeeded")
	}
}

func TestLegacyToJSONToLegacy(t *testing.T) {
	m, err := legacy.Read(strings.NewReader(modeltest.BifurcationLegacy), legacy.Options{StrictNumbers: true})
	if err != nil {
		t.Fatalf("legacy.Read() error = %v", err)
	}
	data, err := MarshalJSON(m)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	fromJSON, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}

	var want, got bytes.Buffer
	if err := legacy.Write(m, &want); err != nil {
		t.Fatalf("legacy.Write() error = %v", err)
	}
	if err := legacy.Write(fromJSON, &got); err != nil {
		t.Fatalf("legacy.Write() error = %v", err)
	}
	if diff := cmp.Diff(want.String(), got.String()); diff != "" {
		t.Errorf("legacy output mismatch (-want +got):\n%s", diff)
	}
}

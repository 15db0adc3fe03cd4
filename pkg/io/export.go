package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model"
)

// The wire types fix the key order of the written document. Field order in
// these structs is the byte order of the output.

type document struct {
	ModelName     string        `json:"modelName"`
	SolverOptions solverOptions `json:"solverOptions"`
	Materials     []material    `json:"materials"`
	Nodes         []node        `json:"nodes"`
	Joints        []jointEntry  `json:"joints"`
	Segments      []segment     `json:"segments"`
	DataTables    []dataTable   `json:"dataTables"`
}

type solverOptions struct {
	TimeStep             float64 `json:"timeStep"`
	StepSize             int64   `json:"stepSize"`
	MaxStep              int64   `json:"maxStep"`
	QuadPoints           int64   `json:"quadPoints"`
	InletDataTableName   string  `json:"inletDataTableName"`
	BoundaryType         string  `json:"boundaryType"`
	ConvergenceTolerance float64 `json:"convergenceTolerance"`
	UseIV                int64   `json:"useIV"`
	UseStab              int64   `json:"useStab"`
	OutputType           string  `json:"outputType,omitempty"`
	VTKOutputType        *int    `json:"vtkOutputType,omitempty"`
}

type material struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Density   float64 `json:"density"`
	Viscosity float64 `json:"viscosity"`
	PRef      float64 `json:"pRef"`
	Exponent  float64 `json:"exponent"`
	Param1    float64 `json:"param1"`
	Param2    float64 `json:"param2"`
	Param3    float64 `json:"param3"`
}

type node struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type jointEntry struct {
	Joint       joint       `json:"joint"`
	JointInlet  segmentList `json:"jointInlet"`
	JointOutlet segmentList `json:"jointOutlet"`
}

type joint struct {
	ID             string `json:"id"`
	AssociatedNode string `json:"associatedNode"`
	InletName      string `json:"inletName"`
	OutletName     string `json:"outletName"`
}

type segmentList struct {
	Name          string  `json:"name"`
	TotalSegments int64   `json:"totalSegments"`
	Segments      []int64 `json:"segments"`
}

// segment carries either the length/area triple or the full profile.
type segment struct {
	Name                   string    `json:"name"`
	ID                     int64     `json:"id"`
	Length                 *float64  `json:"length,omitempty"`
	TotalElements          int64     `json:"totalElements"`
	InNode                 int64     `json:"inNode"`
	OutNode                int64     `json:"outNode"`
	InletArea              *float64  `json:"inletArea,omitempty"`
	OutletArea             *float64  `json:"outletArea,omitempty"`
	SpatialCharacteristics *[]sample `json:"spatialCharacteristics,omitempty"`
	Flow                   float64   `json:"flow"`
	MaterialName           string    `json:"materialName"`
	LossType               string    `json:"lossType"`
	BranchAngle            float64   `json:"branchAngle"`
	UpstreamSegment        int64     `json:"upstreamSegment"`
	BranchSegment          int64     `json:"branchSegment"`
	BoundaryType           string    `json:"boundaryType"`
	DataTableName          string    `json:"dataTableName"`
}

type sample struct {
	Z    float64 `json:"z"`
	Area float64 `json:"area"`
}

type dataTable struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Values []float64 `json:"values"`
}

// WriteJSON encodes m as a structured document and writes it to w.
//
// Sections are written in the order modelName, solverOptions, materials,
// nodes, joints, segments, dataTables, with two-space indentation, so equal
// models always produce identical bytes. Each joint is written together
// with the inlet and outlet lists at the same position, which requires as
// many lists of each kind as there are joints. WriteJSON also requires at
// least as many nodes as joints, the precondition of the positional
// joint-to-node association.
//
// The output can be read back with [ReadJSON].
func WriteJSON(m *model.Model, w io.Writer) error {
	doc, err := toDocument(m)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the bytes [WriteJSON] would write.
func MarshalJSON(m *model.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes m to a JSON file at path. See [WriteJSON].
func ExportJSON(m *model.Model, path string) error {
	data, err := MarshalJSON(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// checkConsistentSize fails when parallel collections of one section have
// different lengths.
func checkConsistentSize(section string, sizes ...int) error {
	for _, n := range sizes[1:] {
		if n != sizes[0] {
			return errors.New(errors.ErrCodeInternal, "%s: all collections must have the same size, got %v", section, sizes)
		}
	}
	return nil
}

func toDocument(m *model.Model) (*document, error) {
	if err := checkConsistentSize(sectionJoints, len(m.Joints), len(m.InletLists), len(m.OutletLists)); err != nil {
		return nil, err
	}
	if len(m.Nodes) < len(m.Joints) {
		return nil, errors.New(errors.ErrCodeInvalidStructure,
			"%s: %d joints need at least as many nodes, got %d", sectionJoints, len(m.Joints), len(m.Nodes))
	}

	doc := &document{
		ModelName:     m.Name,
		SolverOptions: toSolverOptions(m),
		Materials:     make([]material, len(m.Materials)),
		Nodes:         make([]node, len(m.Nodes)),
		Joints:        make([]jointEntry, len(m.Joints)),
		Segments:      make([]segment, len(m.Segments)),
		DataTables:    make([]dataTable, len(m.DataTables)),
	}

	for i, mat := range m.Materials {
		if mat.Law == nil {
			return nil, errors.New(errors.ErrCodeInvalidValue, "%s: material %s has no law", sectionMaterials, mat.Name)
		}
		p := mat.Params()
		doc.Materials[i] = material{
			Name:      mat.Name,
			Type:      mat.Kind().String(),
			Density:   mat.Density,
			Viscosity: mat.Viscosity,
			PRef:      mat.PRef,
			Exponent:  mat.Exponent,
			Param1:    p[0],
			Param2:    p[1],
			Param3:    p[2],
		}
	}
	for i, n := range m.Nodes {
		doc.Nodes[i] = node{Name: n.Name, X: n.X, Y: n.Y, Z: n.Z}
	}
	for i, j := range m.Joints {
		doc.Joints[i] = jointEntry{
			Joint: joint{
				ID:             j.Name,
				AssociatedNode: j.Node,
				InletName:      j.InletList,
				OutletName:     j.OutletList,
			},
			JointInlet:  toSegmentList(m.InletLists[i]),
			JointOutlet: toSegmentList(m.OutletLists[i]),
		}
	}
	for i, s := range m.Segments {
		doc.Segments[i] = toSegment(s)
	}
	for i, d := range m.DataTables {
		values := d.Values
		if values == nil {
			values = []float64{}
		}
		doc.DataTables[i] = dataTable{Name: d.Name, Type: d.Kind, Values: values}
	}
	return doc, nil
}

func toSolverOptions(m *model.Model) solverOptions {
	s := m.Solver
	out := solverOptions{
		TimeStep:             s.TimeStep,
		StepSize:             s.StepSize,
		MaxStep:              s.MaxStep,
		QuadPoints:           s.QuadPoints,
		InletDataTableName:   s.InletDataTable,
		BoundaryType:         s.BoundaryType,
		ConvergenceTolerance: s.Tolerance,
		UseIV:                s.UseIV,
		UseStab:              s.UseStab,
	}
	if m.Output != nil {
		out.OutputType = m.Output.Type.String()
		out.VTKOutputType = m.Output.VTKSubtype
	}
	return out
}

func toSegmentList(l model.SegmentList) segmentList {
	ids := l.Segments
	if ids == nil {
		ids = []int64{}
	}
	return segmentList{Name: l.Name, TotalSegments: l.Count, Segments: ids}
}

func toSegment(s model.Segment) segment {
	out := segment{
		Name:            s.Name,
		ID:              s.ID,
		TotalElements:   s.Elements,
		InNode:          s.InNode,
		OutNode:         s.OutNode,
		Flow:            s.InitialFlow,
		MaterialName:    s.Material,
		LossType:        s.LossType,
		BranchAngle:     s.BranchAngle,
		UpstreamSegment: s.UpstreamSegment,
		BranchSegment:   s.BranchSegment,
		BoundaryType:    s.BoundaryType,
		DataTableName:   s.DataTable,
	}
	if s.Profile.IsSimple() {
		length, in, outlet := s.Profile.Length(), s.Profile.InletArea(), s.Profile.OutletArea()
		out.Length, out.InletArea, out.OutletArea = &length, &in, &outlet
		return out
	}
	samples := make([]sample, len(s.Profile.Samples))
	for i, smp := range s.Profile.Samples {
		samples[i] = sample{Z: smp.Z, Area: smp.Area}
	}
	out.SpatialCharacteristics = &samples
	return out
}

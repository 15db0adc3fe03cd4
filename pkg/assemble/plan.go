package assemble

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vascnet/netinput/pkg/model"
)

// Plan is the full sequence of construction calls for one model, grouped by
// entity kind in call order.
type Plan struct {
	Nodes      []NodeSpec      `json:"nodes"`
	Joints     []JointSpec     `json:"joints"`
	Materials  []MaterialSpec  `json:"materials"`
	DataTables []DataTableSpec `json:"data_tables"`
	Segments   []SegmentSpec   `json:"segments"`
	Solve      *SolveSpec      `json:"solve"`
}

// Calls returns the number of Builder calls the plan records.
func (p *Plan) Calls() int {
	n := len(p.Nodes) + len(p.Joints) + len(p.Materials) + len(p.DataTables) + len(p.Segments)
	if p.Solve != nil {
		n++
	}
	return n
}

// WriteJSON writes the plan as indented JSON.
func (p *Plan) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return nil
}

// Recorder is a [Builder] that records every call. The zero value is ready
// to use.
type Recorder struct {
	Plan Plan
}

var _ Builder = (*Recorder)(nil)

// NewRecorder returns a Recorder whose plan has empty, non-nil collections.
func NewRecorder() *Recorder {
	return &Recorder{Plan: Plan{
		Nodes:      []NodeSpec{},
		Joints:     []JointSpec{},
		Materials:  []MaterialSpec{},
		DataTables: []DataTableSpec{},
		Segments:   []SegmentSpec{},
	}}
}

func (r *Recorder) CreateNode(n NodeSpec) error {
	r.Plan.Nodes = append(r.Plan.Nodes, n)
	return nil
}

func (r *Recorder) CreateJoint(j JointSpec) error {
	r.Plan.Joints = append(r.Plan.Joints, j)
	return nil
}

func (r *Recorder) CreateMaterial(m MaterialSpec) error {
	r.Plan.Materials = append(r.Plan.Materials, m)
	return nil
}

func (r *Recorder) CreateDataTable(d DataTableSpec) error {
	r.Plan.DataTables = append(r.Plan.DataTables, d)
	return nil
}

func (r *Recorder) CreateSegment(s SegmentSpec) error {
	r.Plan.Segments = append(r.Plan.Segments, s)
	return nil
}

// Solve records s. A second call replaces the first.
func (r *Recorder) Solve(s SolveSpec) error {
	r.Plan.Solve = &s
	return nil
}

// BuildPlan assembles m into a new [Recorder] and returns its plan.
func BuildPlan(m *model.Model) (*Plan, error) {
	r := NewRecorder()
	if err := Assemble(m, r); err != nil {
		return nil, err
	}
	return &r.Plan, nil
}

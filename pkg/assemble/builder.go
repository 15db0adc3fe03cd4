package assemble

import "github.com/vascnet/netinput/pkg/model"

// Builder receives a network one entity at a time. Implementations wrap the
// network-construction side of a solver; any returned error aborts the
// assembly.
type Builder interface {
	CreateNode(n NodeSpec) error
	CreateJoint(j JointSpec) error
	CreateMaterial(m MaterialSpec) error
	CreateDataTable(d DataTableSpec) error
	CreateSegment(s SegmentSpec) error
	Solve(s SolveSpec) error
}

// NodeSpec places a named node.
type NodeSpec struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// JointSpec is a joint with its node resolved to a position and its
// segment lists resolved to ids.
type JointSpec struct {
	Name    string  `json:"name"`
	Node    int     `json:"node"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Inlets  []int64 `json:"inlets"`
	Outlets []int64 `json:"outlets"`
}

// MaterialSpec carries exactly as many parameters as the law takes.
type MaterialSpec struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Density   float64   `json:"density"`
	Viscosity float64   `json:"viscosity"`
	Exponent  float64   `json:"exponent"`
	PRef      float64   `json:"p_ref"`
	Params    []float64 `json:"params"`
}

// DataTableSpec is a data table split into (time, value) pairs.
type DataTableSpec struct {
	Name  string      `json:"name"`
	Kind  string      `json:"kind"`
	Curve model.Curve `json:"curve"`
}

// SegmentSpec is a segment with its material resolved to an index and its
// data table resolved to a curve.
type SegmentSpec struct {
	Name            string         `json:"name"`
	ID              int64          `json:"id"`
	Length          float64        `json:"length"`
	Elements        int64          `json:"elements"`
	InNode          int64          `json:"in_node"`
	OutNode         int64          `json:"out_node"`
	InletArea       float64        `json:"inlet_area"`
	OutletArea      float64        `json:"outlet_area"`
	Profile         []model.Sample `json:"profile"`
	InitialFlow     float64        `json:"initial_flow"`
	Material        int            `json:"material"`
	LossType        string         `json:"loss_type"`
	BranchAngle     float64        `json:"branch_angle"`
	UpstreamSegment int64          `json:"upstream_segment"`
	BranchSegment   int64          `json:"branch_segment"`
	BoundaryType    string         `json:"boundary_type"`
	Curve           model.Curve    `json:"curve"`
}

// SolveSpec holds the solver scalars, the inlet curve and the output
// selection.
type SolveSpec struct {
	TimeStep     float64     `json:"time_step"`
	StepSize     int64       `json:"step_size"`
	MaxStep      int64       `json:"max_step"`
	QuadPoints   int64       `json:"quad_points"`
	BoundaryType string      `json:"boundary_type"`
	Inlet        model.Curve `json:"inlet"`
	Tolerance    float64     `json:"tolerance"`
	UseIV        int64       `json:"use_iv"`
	UseStab      int64       `json:"use_stab"`
	OutputType   string      `json:"output_type"`
	VTKSubtype   *int        `json:"vtk_subtype,omitempty"`
}

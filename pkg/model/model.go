package model

import (
	"errors"
	"math"
	"strings"
)

// NoneDataTable is the data-table reference used by segments without a
// boundary curve.
const NoneDataTable = "NONE"

var (
	// ErrOddCurve is returned by [DataTable.Curve] when the sample count
	// cannot be split into (time, value) pairs.
	ErrOddCurve = errors.New("data table has an odd number of samples")

	// ErrUnknownMaterialKind is returned by [ParseMaterialKind] for names
	// other than OLUFSEN and LINEAR.
	ErrUnknownMaterialKind = errors.New("unknown material type")

	// ErrUnknownOutputType is returned by [ParseOutputType] for names other
	// than TEXT, VTK and BOTH.
	ErrUnknownOutputType = errors.New("unknown output type")
)

// Model is the canonical network description shared by every parser,
// serializer, the validator and the assembler.
//
// The zero value is an empty, valid-to-serialize model.
type Model struct {
	Name        string
	Nodes       []Node
	Joints      []Joint
	InletLists  []SegmentList
	OutletLists []SegmentList
	Materials   []Material
	DataTables  []DataTable
	Segments    []Segment
	Solver      SolverOptions

	// Output is nil when the input did not select an output format.
	Output *OutputSettings
}

// Point is a position in 3-D space.
type Point struct {
	X, Y, Z float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	dz := q.Z - p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Node is a named point of the network graph.
type Node struct {
	Name    string
	X, Y, Z float64
}

// Position returns the node coordinates as a [Point].
func (n Node) Position() Point { return Point{X: n.X, Y: n.Y, Z: n.Z} }

// Joint associates a node with a named inlet list and a named outlet list.
type Joint struct {
	Name       string
	Node       string // explicit node name
	InletList  string // name of a JOINTINLET list
	OutletList string // name of a JOINTOUTLET list
}

// SegmentList is a named, ordered list of segment ids. Count is the
// declared length as written in the input; it is compared against
// len(Segments) by the validator, not by the parsers.
type SegmentList struct {
	Name     string
	Count    int64
	Segments []int64
}

// DataTable is a named flat sample sequence.
type DataTable struct {
	Name   string
	Kind   string
	Values []float64
}

// Curve is a data table split into parallel time and value arrays.
type Curve struct {
	Time  []float64 `json:"time"`
	Value []float64 `json:"value"`
}

// Len returns the number of (time, value) pairs.
func (c Curve) Len() int { return len(c.Time) }

// Curve interprets the samples as (time, value) pairs.
func (d DataTable) Curve() (Curve, error) {
	if len(d.Values)%2 != 0 {
		return Curve{}, ErrOddCurve
	}
	n := len(d.Values) / 2
	c := Curve{Time: make([]float64, n), Value: make([]float64, n)}
	for i := 0; i < n; i++ {
		c.Time[i] = d.Values[2*i]
		c.Value[i] = d.Values[2*i+1]
	}
	return c, nil
}

// ZeroCurve is the single-sample curve used for segments whose data-table
// reference is [NoneDataTable].
func ZeroCurve() Curve {
	return Curve{Time: []float64{0}, Value: []float64{0}}
}

// Segment is a tubular edge between two nodes.
type Segment struct {
	Name            string
	ID              int64
	Elements        int64
	InNode          int64 // index into Model.Nodes
	OutNode         int64 // index into Model.Nodes
	Profile         Profile
	InitialFlow     float64
	Material        string
	LossType        string
	BranchAngle     float64
	UpstreamSegment int64
	BranchSegment   int64
	BoundaryType    string
	DataTable       string // data table name or NoneDataTable
}

// Length returns the segment length derived from its profile.
func (s Segment) Length() float64 { return s.Profile.Length() }

// HasDataTable reports whether the segment references a real data table.
func (s Segment) HasDataTable() bool {
	return !strings.EqualFold(s.DataTable, NoneDataTable)
}

// SolverOptions holds the scalar simulation parameters.
type SolverOptions struct {
	TimeStep       float64
	StepSize       int64
	MaxStep        int64
	QuadPoints     int64
	InletDataTable string
	BoundaryType   string
	Tolerance      float64
	UseIV          int64
	UseStab        int64
}

// Counts summarizes how many entities of each kind a model holds.
type Counts struct {
	Nodes       int `json:"nodes" yaml:"nodes"`
	Joints      int `json:"joints" yaml:"joints"`
	InletLists  int `json:"inlet_lists" yaml:"inlet_lists"`
	OutletLists int `json:"outlet_lists" yaml:"outlet_lists"`
	Materials   int `json:"materials" yaml:"materials"`
	DataTables  int `json:"data_tables" yaml:"data_tables"`
	Segments    int `json:"segments" yaml:"segments"`
}

// Counts returns entity counts for m.
func (m *Model) Counts() Counts {
	return Counts{
		Nodes:       len(m.Nodes),
		Joints:      len(m.Joints),
		InletLists:  len(m.InletLists),
		OutletLists: len(m.OutletLists),
		Materials:   len(m.Materials),
		DataTables:  len(m.DataTables),
		Segments:    len(m.Segments),
	}
}

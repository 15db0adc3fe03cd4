package assemble

import (
	"fmt"
	"strings"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model"
)

// Assemble hands m to b in dependency order: nodes, joints, materials,
// data tables, segments, then a single Solve.
//
// Names are resolved on the way. A joint's lists and node, a segment's
// material and data table, and the solver's inlet data table must exist;
// otherwise Assemble fails with an UNRESOLVED_REFERENCE error naming the
// key and the index of the owning entity. A data-table reference of
// [model.NoneDataTable] resolves to [model.ZeroCurve].
//
// Assemble stops at the first error. Calls already made on b are not
// undone. m should have passed validation first.
func Assemble(m *model.Model, b Builder) error {
	steps := []func(*model.Model, Builder) error{
		createNodes,
		createJoints,
		createMaterials,
		createDataTables,
		createSegments,
		solve,
	}
	for _, step := range steps {
		if err := step(m, b); err != nil {
			return err
		}
	}
	return nil
}

func createNodes(m *model.Model, b Builder) error {
	for i, n := range m.Nodes {
		if err := b.CreateNode(NodeSpec{Name: n.Name, X: n.X, Y: n.Y, Z: n.Z}); err != nil {
			return fmt.Errorf("create node %d (%s): %w", i, n.Name, err)
		}
	}
	return nil
}

func createJoints(m *model.Model, b Builder) error {
	for i, j := range m.Joints {
		in := m.InletList(j.InletList)
		if in < 0 {
			return errors.New(errors.ErrCodeUnresolved, "joint %d (%s): no joint inlet list %s", i, j.Name, j.InletList)
		}
		out := m.OutletList(j.OutletList)
		if out < 0 {
			return errors.New(errors.ErrCodeUnresolved, "joint %d (%s): no joint outlet list %s", i, j.Name, j.OutletList)
		}
		node := m.NodeIndex(j.Node)
		if node < 0 {
			return errors.New(errors.ErrCodeUnresolved, "joint %d (%s): no node %s", i, j.Name, j.Node)
		}

		pos := m.Nodes[node]
		spec := JointSpec{
			Name:    j.Name,
			Node:    node,
			X:       pos.X,
			Y:       pos.Y,
			Z:       pos.Z,
			Inlets:  ids(m.InletLists[in]),
			Outlets: ids(m.OutletLists[out]),
		}
		if err := b.CreateJoint(spec); err != nil {
			return fmt.Errorf("create joint %d (%s): %w", i, j.Name, err)
		}
	}
	return nil
}

// ids returns a copy of the list's ids, never nil.
func ids(l model.SegmentList) []int64 {
	return append(make([]int64, 0, len(l.Segments)), l.Segments...)
}

func createMaterials(m *model.Model, b Builder) error {
	for i, mat := range m.Materials {
		if mat.Law == nil {
			return errors.New(errors.ErrCodeInvalidValue, "material %d (%s): no pressure-area law", i, mat.Name)
		}
		kind := mat.Kind()
		p := mat.Params()
		spec := MaterialSpec{
			Name:      mat.Name,
			Kind:      kind.String(),
			Density:   mat.Density,
			Viscosity: mat.Viscosity,
			Exponent:  mat.Exponent,
			PRef:      mat.PRef,
			Params:    append([]float64(nil), p[:kind.ParamCount()]...),
		}
		if err := b.CreateMaterial(spec); err != nil {
			return fmt.Errorf("create material %d (%s): %w", i, mat.Name, err)
		}
	}
	return nil
}

func createDataTables(m *model.Model, b Builder) error {
	for i, d := range m.DataTables {
		c, err := d.Curve()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStructure, err, "data table %d (%s): %d samples", i, d.Name, len(d.Values))
		}
		if err := b.CreateDataTable(DataTableSpec{Name: d.Name, Kind: d.Kind, Curve: c}); err != nil {
			return fmt.Errorf("create data table %d (%s): %w", i, d.Name, err)
		}
	}
	return nil
}

// curve resolves a data-table reference. NONE yields the zero curve.
func curve(m *model.Model, name string) (model.Curve, bool, error) {
	if strings.EqualFold(name, model.NoneDataTable) {
		return model.ZeroCurve(), true, nil
	}
	idx := m.DataTableIndex(name)
	if idx < 0 {
		return model.Curve{}, false, nil
	}
	c, err := m.DataTables[idx].Curve()
	return c, true, err
}

func createSegments(m *model.Model, b Builder) error {
	for i, s := range m.Segments {
		mat := m.MaterialIndex(s.Material)
		if mat < 0 {
			return errors.New(errors.ErrCodeUnresolved, "segment %d (%s): no material %s", i, s.Name, s.Material)
		}
		c, ok, err := curve(m, s.DataTable)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStructure, err, "segment %d (%s): data table %s", i, s.Name, s.DataTable)
		}
		if !ok {
			return errors.New(errors.ErrCodeUnresolved, "segment %d (%s): no data table %s", i, s.Name, s.DataTable)
		}

		spec := SegmentSpec{
			Name:            s.Name,
			ID:              s.ID,
			Length:          s.Length(),
			Elements:        s.Elements,
			InNode:          s.InNode,
			OutNode:         s.OutNode,
			InletArea:       s.Profile.InletArea(),
			OutletArea:      s.Profile.OutletArea(),
			Profile:         append([]model.Sample(nil), s.Profile.Samples...),
			InitialFlow:     s.InitialFlow,
			Material:        mat,
			LossType:        s.LossType,
			BranchAngle:     s.BranchAngle,
			UpstreamSegment: s.UpstreamSegment,
			BranchSegment:   s.BranchSegment,
			BoundaryType:    s.BoundaryType,
			Curve:           c,
		}
		if err := b.CreateSegment(spec); err != nil {
			return fmt.Errorf("create segment %d (%s): %w", i, s.Name, err)
		}
	}
	return nil
}

func solve(m *model.Model, b Builder) error {
	opts := m.Solver
	inlet, ok, err := curve(m, opts.InletDataTable)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStructure, err, "solver options: inlet data table %s", opts.InletDataTable)
	}
	if !ok {
		return errors.New(errors.ErrCodeUnresolved, "solver options: no inlet data table %s", opts.InletDataTable)
	}

	out := model.DefaultOutput()
	if m.Output != nil {
		out = *m.Output
	}
	spec := SolveSpec{
		TimeStep:     opts.TimeStep,
		StepSize:     opts.StepSize,
		MaxStep:      opts.MaxStep,
		QuadPoints:   opts.QuadPoints,
		BoundaryType: opts.BoundaryType,
		Inlet:        inlet,
		Tolerance:    opts.Tolerance,
		UseIV:        opts.UseIV,
		UseStab:      opts.UseStab,
		OutputType:   out.Type.String(),
		VTKSubtype:   out.VTKSubtype,
	}
	if err := b.Solve(spec); err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	return nil
}

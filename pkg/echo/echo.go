// Package echo writes a human-readable listing of a network model.
//
// The listing is a diagnostic side file: it shows what the parser
// understood, one labeled block per collection, with columns aligned. It is
// not meant to be parsed back; use [github.com/vascnet/netinput/pkg/legacy]
// or [github.com/vascnet/netinput/pkg/io] for that.
package echo

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vascnet/netinput/pkg/model"
)

// Write writes the listing of m to w.
func Write(m *model.Model, w io.Writer) error {
	blocks := []func(*model.Model, *tabwriter.Writer){
		writeNodes,
		writeJoints,
		writeSegmentLists("JOINT INLETS", func(m *model.Model) []model.SegmentList { return m.InletLists }),
		writeSegmentLists("JOINT OUTLETS", func(m *model.Model) []model.SegmentList { return m.OutletLists }),
		writeSegments,
		writeDataTables,
		writeMaterials,
		writeSolver,
	}

	name := m.Name
	if name == "" {
		name = "(unnamed)"
	}
	if _, err := fmt.Fprintf(w, "MODEL %s\n", name); err != nil {
		return fmt.Errorf("write echo: %w", err)
	}
	for _, block := range blocks {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw)
		block(m, tw)
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("write echo: %w", err)
		}
	}
	return nil
}

// Export writes the listing of m to a file at path.
func Export(m *model.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func header(tw *tabwriter.Writer, title string, n int) {
	fmt.Fprintf(tw, "--- %s (%d) ---\n", title, n)
}

func row(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func integer(v int64) string { return strconv.FormatInt(v, 10) }

func writeNodes(m *model.Model, tw *tabwriter.Writer) {
	header(tw, "NODES", len(m.Nodes))
	if len(m.Nodes) == 0 {
		return
	}
	row(tw, "NAME", "X", "Y", "Z")
	for _, n := range m.Nodes {
		row(tw, n.Name, num(n.X), num(n.Y), num(n.Z))
	}
}

func writeJoints(m *model.Model, tw *tabwriter.Writer) {
	header(tw, "JOINTS", len(m.Joints))
	if len(m.Joints) == 0 {
		return
	}
	row(tw, "NAME", "NODE", "INLET LIST", "OUTLET LIST")
	for _, j := range m.Joints {
		row(tw, j.Name, j.Node, j.InletList, j.OutletList)
	}
}

func writeSegmentLists(title string, lists func(*model.Model) []model.SegmentList) func(*model.Model, *tabwriter.Writer) {
	return func(m *model.Model, tw *tabwriter.Writer) {
		ls := lists(m)
		header(tw, title, len(ls))
		if len(ls) == 0 {
			return
		}
		row(tw, "NAME", "COUNT", "SEGMENTS")
		for _, l := range ls {
			ids := make([]string, len(l.Segments))
			for i, id := range l.Segments {
				ids[i] = integer(id)
			}
			row(tw, l.Name, integer(l.Count), strings.Join(ids, " "))
		}
	}
}

func writeSegments(m *model.Model, tw *tabwriter.Writer) {
	header(tw, "SEGMENTS", len(m.Segments))
	if len(m.Segments) == 0 {
		return
	}
	row(tw, "NAME", "ID", "LENGTH", "ELEMENTS", "IN", "OUT", "INLET AREA", "OUTLET AREA",
		"FLOW", "MATERIAL", "LOSS", "ANGLE", "UPSTREAM", "BRANCH", "BOUNDARY", "DATA TABLE")
	for _, s := range m.Segments {
		row(tw, s.Name, integer(s.ID), num(s.Length()), integer(s.Elements),
			integer(s.InNode), integer(s.OutNode),
			num(s.Profile.InletArea()), num(s.Profile.OutletArea()),
			num(s.InitialFlow), s.Material, s.LossType, num(s.BranchAngle),
			integer(s.UpstreamSegment), integer(s.BranchSegment), s.BoundaryType, s.DataTable)
	}
	for _, s := range m.Segments {
		if s.Profile.IsSimple() {
			continue
		}
		fmt.Fprintf(tw, "  profile %s:\n", s.Name)
		for _, smp := range s.Profile.Samples {
			row(tw, "", "z="+num(smp.Z), "area="+num(smp.Area))
		}
	}
}

func writeDataTables(m *model.Model, tw *tabwriter.Writer) {
	header(tw, "DATA TABLES", len(m.DataTables))
	for _, d := range m.DataTables {
		fmt.Fprintf(tw, "%s %s (%d samples)\n", d.Name, d.Kind, len(d.Values))
		for i := 0; i < len(d.Values); i += 2 {
			if i+1 < len(d.Values) {
				row(tw, "", num(d.Values[i]), num(d.Values[i+1]))
			} else {
				row(tw, "", num(d.Values[i]))
			}
		}
	}
}

func writeMaterials(m *model.Model, tw *tabwriter.Writer) {
	header(tw, "MATERIALS", len(m.Materials))
	if len(m.Materials) == 0 {
		return
	}
	row(tw, "NAME", "TYPE", "DENSITY", "VISCOSITY", "PREF", "EXPONENT", "PARAMETERS")
	for _, mat := range m.Materials {
		kind := "NONE"
		var params []string
		if mat.Law != nil {
			kind = mat.Kind().String()
			p := mat.Params()
			for _, v := range p[:mat.Kind().ParamCount()] {
				params = append(params, num(v))
			}
		}
		row(tw, mat.Name, kind, num(mat.Density), num(mat.Viscosity), num(mat.PRef), num(mat.Exponent),
			strings.Join(params, " "))
	}
}

func writeSolver(m *model.Model, tw *tabwriter.Writer) {
	s := m.Solver
	fmt.Fprintln(tw, "--- SOLVER OPTIONS ---")
	pairs := [][2]string{
		{"time step", num(s.TimeStep)},
		{"save every", integer(s.StepSize)},
		{"max steps", integer(s.MaxStep)},
		{"quadrature points", integer(s.QuadPoints)},
		{"inlet data table", s.InletDataTable},
		{"inlet boundary", s.BoundaryType},
		{"convergence tolerance", num(s.Tolerance)},
		{"formulation (IV)", integer(s.UseIV)},
		{"stabilization", integer(s.UseStab)},
		{"output", outputLabel(m.Output)},
	}
	for _, p := range pairs {
		row(tw, p[0]+":", p[1])
	}
}

func outputLabel(o *model.OutputSettings) string {
	if o == nil {
		return "default (" + model.DefaultOutput().Type.String() + ")"
	}
	if o.VTKSubtype != nil {
		return fmt.Sprintf("%s subtype %d", o.Type, *o.VTKSubtype)
	}
	return o.Type.String()
}

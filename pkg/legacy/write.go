package legacy

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model"
)

// Write renders m in the legacy format. The output reads back through
// [Read] into a model equal to m.
//
// Write fails for models the legacy format cannot carry: segment profiles
// other than a two-sample profile starting at z = 0, names that are not a
// single token, non-finite numbers, and segment lists whose ids would be
// dropped because the declared count is not positive.
func Write(m *model.Model, w io.Writer) error {
	lw := &lineWriter{w: bufio.NewWriter(w)}

	if m.Name != "" {
		lw.record("MODEL", lw.name("model name", m.Name))
		lw.blank()
	}

	for _, n := range m.Nodes {
		lw.record("NODE", lw.name("node name", n.Name), lw.float(n.X), lw.float(n.Y), lw.float(n.Z))
	}
	lw.blankIf(len(m.Nodes) > 0)

	for _, j := range m.Joints {
		lw.record("JOINT",
			lw.name("joint name", j.Name),
			lw.name("joint node", j.Node),
			lw.name("inlet list name", j.InletList),
			lw.name("outlet list name", j.OutletList),
		)
	}
	for _, l := range m.InletLists {
		lw.record("JOINTINLET", lw.segmentList(l)...)
	}
	for _, l := range m.OutletLists {
		lw.record("JOINTOUTLET", lw.segmentList(l)...)
	}
	lw.blankIf(len(m.Joints)+len(m.InletLists)+len(m.OutletLists) > 0)

	for _, s := range m.Segments {
		lw.segment(s)
	}
	lw.blankIf(len(m.Segments) > 0)

	for _, d := range m.DataTables {
		lw.dataTable(d)
		lw.blank()
	}

	for _, mat := range m.Materials {
		lw.material(mat)
	}
	lw.blankIf(len(m.Materials) > 0)

	if m.Output != nil {
		fields := []string{m.Output.Type.String()}
		if m.Output.VTKSubtype != nil {
			fields = append(fields, strconv.Itoa(*m.Output.VTKSubtype))
		}
		lw.record("OUTPUT", fields...)
		lw.blank()
	}

	if s := m.Solver; s != (model.SolverOptions{}) {
		lw.record("SOLVEROPTIONS",
			lw.float(s.TimeStep),
			lw.int(s.StepSize),
			lw.int(s.MaxStep),
			lw.int(s.QuadPoints),
			lw.name("inlet data table", s.InletDataTable),
			lw.name("boundary type", s.BoundaryType),
			lw.float(s.Tolerance),
			lw.int(s.UseIV),
			lw.int(s.UseStab),
		)
	}

	if lw.err != nil {
		return lw.err
	}
	return lw.w.Flush()
}

// Export writes m to a legacy file at path. See [Write].
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

// lineWriter keeps the first formatting or write error. Once err is set
// every later call is a no-op.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lineWriter) fail(err error) {
	if lw.err == nil {
		lw.err = err
	}
}

func (lw *lineWriter) record(keyword string, fields ...string) {
	if lw.err != nil {
		return
	}
	_, err := fmt.Fprintf(lw.w, "%s %s\n", keyword, strings.Join(fields, " "))
	if err != nil {
		lw.fail(err)
	}
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	if _, err := lw.w.WriteString(s + "\n"); err != nil {
		lw.fail(err)
	}
}

func (lw *lineWriter) blank() { lw.line("") }

func (lw *lineWriter) blankIf(cond bool) {
	if cond {
		lw.blank()
	}
}

func (lw *lineWriter) name(kind, v string) string {
	if err := errors.ValidateToken(kind, v); err != nil {
		lw.fail(err)
	}
	return v
}

func (lw *lineWriter) float(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		lw.fail(errors.New(errors.ErrCodeInvalidValue, "non-finite value %v", v))
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (lw *lineWriter) int(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (lw *lineWriter) segmentList(l model.SegmentList) []string {
	if l.Count <= 0 && len(l.Segments) > 0 {
		lw.fail(errors.New(errors.ErrCodeUnsupported,
			"segment list %s: count %d would drop %d ids", l.Name, l.Count, len(l.Segments)))
	}
	fields := []string{lw.name("segment list name", l.Name), lw.int(l.Count)}
	for _, id := range l.Segments {
		fields = append(fields, lw.int(id))
	}
	return fields
}

func (lw *lineWriter) segment(s model.Segment) {
	if !s.Profile.IsSimple() {
		lw.fail(errors.New(errors.ErrCodeUnsupported,
			"segment %s: profile with %d samples has no legacy form", s.Name, len(s.Profile.Samples)))
		return
	}
	lw.record("SEGMENT",
		lw.name("segment name", s.Name),
		lw.int(s.ID),
		lw.float(s.Length()),
		lw.int(s.Elements),
		lw.int(s.InNode),
		lw.int(s.OutNode),
		lw.float(s.Profile.InletArea()),
		lw.float(s.Profile.OutletArea()),
		lw.float(s.InitialFlow),
		lw.name("material name", s.Material),
		lw.name("loss type", s.LossType),
		lw.float(s.BranchAngle),
		lw.int(s.UpstreamSegment),
		lw.int(s.BranchSegment),
		lw.name("boundary type", s.BoundaryType),
		lw.name("data table name", s.DataTable),
	)
}

// dataTable writes the samples two per line, matching the (time, value)
// reading of a curve.
func (lw *lineWriter) dataTable(d model.DataTable) {
	lw.record(keywordDataTable, lw.name("data table name", d.Name), lw.name("data table type", d.Kind))
	for i := 0; i < len(d.Values); i += 2 {
		pair := []string{lw.float(d.Values[i])}
		if i+1 < len(d.Values) {
			pair = append(pair, lw.float(d.Values[i+1]))
		}
		lw.line(strings.Join(pair, " "))
	}
	lw.line(keywordEndTable)
}

func (lw *lineWriter) material(m model.Material) {
	if m.Law == nil {
		lw.fail(errors.New(errors.ErrCodeInvalidValue, "material %s has no law", m.Name))
		return
	}
	fields := []string{
		lw.name("material name", m.Name),
		m.Kind().String(),
		lw.float(m.Density),
		lw.float(m.Viscosity),
		lw.float(m.PRef),
		lw.float(m.Exponent),
	}
	params := m.Params()
	for i := 0; i < m.Kind().ParamCount(); i++ {
		fields = append(fields, lw.float(params[i]))
	}
	lw.record("MATERIAL", fields...)
}

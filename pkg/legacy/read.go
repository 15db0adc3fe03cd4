package legacy

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model"
)

// Options configures [Read].
type Options struct {
	// StrictNumbers rejects numeric fields that are not entirely numeric.
	// When false, a field reads as its longest numeric prefix, or zero.
	StrictNumbers bool
}

// SyntaxError reports the first problem found in a legacy input.
type SyntaxError struct {
	Line    int    // 1-based line number
	Keyword string // record keyword of the offending line
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Keyword, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

type recordFunc func(p *parser, tokens []string) error

var records = map[string]recordFunc{
	"MODEL":         (*parser).modelName,
	"NODE":          (*parser).node,
	"JOINT":         (*parser).joint,
	"JOINTINLET":    (*parser).jointInlet,
	"JOINTOUTLET":   (*parser).jointOutlet,
	"SEGMENT":       (*parser).segment,
	"SOLVEROPTIONS": (*parser).solverOptions,
	"OUTPUT":        (*parser).output,
	"MATERIAL":      (*parser).material,
}

const (
	keywordDataTable = "DATATABLE"
	keywordEndTable  = "ENDDATATABLE"
)

// Read parses a legacy network description from r.
//
// Records are processed in input order and the first error aborts the
// parse; no partial model is returned. Errors raised while interpreting a
// record are *SyntaxError values wrapping a coded error from
// [github.com/vascnet/netinput/pkg/errors].
func Read(r io.Reader, opts Options) (*model.Model, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
	}

	p := &parser{m: &model.Model{}, num: numbers{strict: opts.StrictNumbers}}
	cur := lineCursor{lines: lines}
	for {
		line, lineNo, rest, ok := cur.next()
		if !ok {
			break
		}
		cur = rest

		tokens := Tokenize(line)
		if len(tokens) == 0 || isComment(tokens) {
			continue
		}

		keyword := strings.ToUpper(tokens[0])
		if keyword == keywordDataTable {
			if cur, err = p.dataTable(tokens, lineNo, cur); err != nil {
				return nil, err
			}
			continue
		}

		fn, ok := records[keyword]
		if !ok {
			return nil, &SyntaxError{
				Line:    lineNo,
				Keyword: tokens[0],
				Err:     errors.New(errors.ErrCodeInvalidStructure, "unknown record keyword"),
			}
		}
		if err := fn(p, tokens); err != nil {
			return nil, &SyntaxError{Line: lineNo, Keyword: keyword, Err: err}
		}
	}

	return p.m, nil
}

// Import reads the legacy file at path. See [Read].
func Import(path string, opts Options) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}

type parser struct {
	m   *model.Model
	num numbers

	haveName   bool
	haveSolver bool
	haveOutput bool
}

// fields converts positional tokens and keeps the first conversion error.
type fields struct {
	tokens []string
	num    numbers
	err    error
}

func (f *fields) float(i int, name string) float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.num.float(name, f.tokens[i])
	f.err = err
	return v
}

func (f *fields) int(i int, name string) int64 {
	if f.err != nil {
		return 0
	}
	v, err := f.num.int(name, f.tokens[i])
	f.err = err
	return v
}

func (f *fields) count(i int, name string) int64 {
	if f.err != nil {
		return 0
	}
	v, err := f.num.count(name, f.tokens[i])
	f.err = err
	return v
}

// arity checks the token count including the keyword. hi < 0 means
// unbounded.
func arity(tokens []string, lo, hi int) error {
	var want string
	switch {
	case lo == hi:
		want = fmt.Sprint(lo)
	case hi < 0:
		want = fmt.Sprintf("at least %d", lo)
	default:
		want = fmt.Sprintf("%d to %d", lo, hi)
	}

	if len(tokens) < lo {
		return errors.New(errors.ErrCodeInvalidStructure, "not enough fields: got %d, want %s", len(tokens), want)
	}
	if hi >= 0 && len(tokens) > hi {
		return errors.New(errors.ErrCodeInvalidStructure, "too many fields: got %d, want %s", len(tokens), want)
	}
	return nil
}

func (p *parser) modelName(tokens []string) error {
	if p.haveName {
		return errors.New(errors.ErrCodeDuplicate, "model name already defined")
	}
	if err := arity(tokens, 2, 2); err != nil {
		return err
	}
	p.m.Name = tokens[1]
	p.haveName = true
	return nil
}

func (p *parser) node(tokens []string) error {
	if err := arity(tokens, 5, 5); err != nil {
		return err
	}
	f := fields{tokens: tokens, num: p.num}
	n := model.Node{
		Name: tokens[1],
		X:    f.float(2, "x"),
		Y:    f.float(3, "y"),
		Z:    f.float(4, "z"),
	}
	if f.err != nil {
		return f.err
	}
	p.m.Nodes = append(p.m.Nodes, n)
	return nil
}

func (p *parser) joint(tokens []string) error {
	if err := arity(tokens, 5, 5); err != nil {
		return err
	}
	p.m.Joints = append(p.m.Joints, model.Joint{
		Name:       tokens[1],
		Node:       tokens[2],
		InletList:  tokens[3],
		OutletList: tokens[4],
	})
	return nil
}

func (p *parser) jointInlet(tokens []string) error {
	l, err := p.segmentList(tokens)
	if err != nil {
		return err
	}
	p.m.InletLists = append(p.m.InletLists, l)
	return nil
}

func (p *parser) jointOutlet(tokens []string) error {
	l, err := p.segmentList(tokens)
	if err != nil {
		return err
	}
	p.m.OutletLists = append(p.m.OutletLists, l)
	return nil
}

// segmentList reads "name count [ids...]". Ids are kept only for a positive
// count, and a count that disagrees with the id total is left to the
// validator.
func (p *parser) segmentList(tokens []string) (model.SegmentList, error) {
	if err := arity(tokens, 3, -1); err != nil {
		return model.SegmentList{}, err
	}
	f := fields{tokens: tokens, num: p.num}
	l := model.SegmentList{Name: tokens[1], Count: f.int(2, "segment count")}
	if l.Count > 0 {
		l.Segments = make([]int64, 0, len(tokens)-3)
		for i := 3; i < len(tokens); i++ {
			l.Segments = append(l.Segments, f.int(i, "segment id"))
		}
	}
	return l, f.err
}

func (p *parser) segment(tokens []string) error {
	if err := arity(tokens, 17, 17); err != nil {
		return err
	}
	f := fields{tokens: tokens, num: p.num}
	s := model.Segment{
		Name:     tokens[1],
		ID:       f.int(2, "id"),
		Elements: f.int(4, "element count"),
		InNode:   f.int(5, "inlet node"),
		OutNode:  f.int(6, "outlet node"),
		Profile: model.SimpleProfile(
			f.float(3, "length"),
			f.float(7, "inlet area"),
			f.float(8, "outlet area"),
		),
		InitialFlow:     f.float(9, "initial flow"),
		Material:        tokens[10],
		LossType:        tokens[11],
		BranchAngle:     f.float(12, "branch angle"),
		UpstreamSegment: f.int(13, "upstream segment"),
		BranchSegment:   f.int(14, "branch segment"),
		BoundaryType:    tokens[15],
		DataTable:       tokens[16],
	}
	if f.err != nil {
		return f.err
	}
	p.m.Segments = append(p.m.Segments, s)
	return nil
}

func (p *parser) solverOptions(tokens []string) error {
	if p.haveSolver {
		return errors.New(errors.ErrCodeDuplicate, "solver options already defined")
	}
	if err := arity(tokens, 10, 10); err != nil {
		return err
	}
	f := fields{tokens: tokens, num: p.num}
	opts := model.SolverOptions{
		TimeStep:       f.float(1, "time step"),
		StepSize:       f.count(2, "step size"),
		MaxStep:        f.count(3, "max step"),
		QuadPoints:     f.int(4, "quadrature points"),
		InletDataTable: tokens[5],
		BoundaryType:   tokens[6],
		Tolerance:      f.float(7, "convergence tolerance"),
		UseIV:          f.int(8, "useIV"),
		UseStab:        f.int(9, "useStab"),
	}
	if f.err != nil {
		return f.err
	}
	p.m.Solver = opts
	p.haveSolver = true
	return nil
}

func (p *parser) output(tokens []string) error {
	if p.haveOutput {
		return errors.New(errors.ErrCodeDuplicate, "output already defined")
	}
	if err := arity(tokens, 2, 3); err != nil {
		return err
	}
	typ, err := model.ParseOutputType(tokens[1])
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidValue, err, "output type")
	}
	out := &model.OutputSettings{Type: typ}
	if len(tokens) == 3 {
		f := fields{tokens: tokens, num: p.num}
		v := int(f.int(2, "vtk subtype"))
		if f.err != nil {
			return f.err
		}
		if !model.ValidVTKSubtype(v) {
			return errors.New(errors.ErrCodeInvalidValue, "vtk subtype must be 0 or 1, got %d", v)
		}
		out.VTKSubtype = &v
	}
	p.m.Output = out
	p.haveOutput = true
	return nil
}

func (p *parser) material(tokens []string) error {
	if err := arity(tokens, 8, 10); err != nil {
		return err
	}
	kind, err := model.ParseMaterialKind(tokens[2])
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidValue, err, "material %s", tokens[1])
	}
	// The keyword, name, type and four scalars precede the law parameters.
	if got := len(tokens) - 7; got < kind.ParamCount() {
		return errors.New(errors.ErrCodeInvalidStructure, "%s law needs %d parameters, got %d", kind, kind.ParamCount(), got)
	}

	f := fields{tokens: tokens, num: p.num}
	var params [3]float64
	for i := 0; i < kind.ParamCount(); i++ {
		params[i] = f.float(7+i, fmt.Sprintf("param%d", i+1))
	}
	mat := model.Material{
		Name:      tokens[1],
		Density:   f.float(3, "density"),
		Viscosity: f.float(4, "viscosity"),
		PRef:      f.float(5, "reference pressure"),
		Exponent:  f.float(6, "exponent"),
	}
	if f.err != nil {
		return f.err
	}
	if mat.Law, err = model.NewLaw(kind, params); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "material %s", mat.Name)
	}
	p.m.Materials = append(p.m.Materials, mat)
	return nil
}

// dataTable reads a DATATABLE header and the sample lines that follow it,
// returning the cursor positioned after the block. The block ends at an
// ENDDATATABLE line, a blank line, or the end of input. Comment lines inside
// the block are skipped.
func (p *parser) dataTable(header []string, headerLine int, cur lineCursor) (lineCursor, error) {
	if err := arity(header, 3, 3); err != nil {
		return cur, &SyntaxError{Line: headerLine, Keyword: keywordDataTable, Err: err}
	}
	table := model.DataTable{Name: header[1], Kind: header[2], Values: []float64{}}

	for {
		line, lineNo, rest, ok := cur.next()
		if !ok {
			break
		}
		cur = rest

		tokens := Tokenize(line)
		if len(tokens) == 0 {
			break
		}
		if isComment(tokens) {
			continue
		}
		if strings.EqualFold(tokens[0], keywordEndTable) {
			break
		}
		for _, tok := range tokens {
			v, err := p.num.float("sample", tok)
			if err != nil {
				return cur, &SyntaxError{
					Line:    lineNo,
					Keyword: keywordDataTable,
					Err:     fmt.Errorf("table %s: %w", table.Name, err),
				}
			}
			table.Values = append(table.Values, v)
		}
	}

	p.m.DataTables = append(p.m.DataTables, table)
	return cur, nil
}

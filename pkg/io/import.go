package io

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model"
)

// Top-level sections, in the order they are parsed.
const (
	sectionNodes      = "nodes"
	sectionJoints     = "joints"
	sectionMaterials  = "materials"
	sectionDataTables = "dataTables"
	sectionSegments   = "segments"
	sectionSolver     = "solverOptions"
)

// outputNone is written by older tools for "no output selection".
const outputNone = "NONE"

// ReadJSON decodes a structured network document from r.
//
// The document must be an object with the arrays "nodes", "joints",
// "materials", "dataTables" and "segments" and the object "solverOptions".
// "modelName" is optional and defaults to "". Every field of every record is
// required, except:
//   - length, inletArea and outletArea of a segment that carries
//     spatialCharacteristics
//   - outputType and vtkOutputType of solverOptions
//
// Errors name the owning section and entry:
//
//	INVALID_STRUCTURE: parse "nodes": entry 2: missing field "x"
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*model.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
	}
	return ParseJSON(data)
}

// ImportJSON reads the structured document at path. See [ReadJSON].
func ImportJSON(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ParseJSON decodes a structured network document held in memory.
// See [ReadJSON].
func ParseJSON(data []byte) (*model.Model, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "malformed JSON document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "document is not a JSON object")
	}

	m := &model.Model{}
	if name := doc.Get("modelName"); name.Exists() {
		if name.Type != gjson.String {
			return nil, errors.New(errors.ErrCodeInvalidStructure, "field \"modelName\": want string, got %s", name.Type)
		}
		m.Name = name.String()
	}

	steps := []struct {
		key   string
		parse func(m *model.Model, v gjson.Result) error
	}{
		{sectionNodes, eachEntry(parseNode)},
		{sectionJoints, eachEntry(parseJoint)},
		{sectionMaterials, eachEntry(parseMaterial)},
		{sectionDataTables, eachEntry(parseDataTable)},
		{sectionSegments, eachEntry(parseSegment)},
		{sectionSolver, parseSolverOptions},
	}
	for _, step := range steps {
		if err := step.parse(m, doc.Get(step.key)); err != nil {
			return nil, sectionError(step.key, err)
		}
	}
	return m, nil
}

// errBadValue marks field values that are well-formed but not acceptable.
var errBadValue = stderrors.New("invalid value")

func sectionError(key string, err error) error {
	code := errors.ErrCodeInvalidStructure
	if stderrors.Is(err, errBadValue) ||
		stderrors.Is(err, model.ErrUnknownMaterialKind) ||
		stderrors.Is(err, model.ErrUnknownOutputType) {
		code = errors.ErrCodeInvalidValue
	}
	return errors.Wrap(code, err, "parse %q", key)
}

// eachEntry adapts a per-record parser to a top-level array section.
func eachEntry(fn func(m *model.Model, rec *record) error) func(*model.Model, gjson.Result) error {
	return func(m *model.Model, v gjson.Result) error {
		if !v.Exists() {
			return fmt.Errorf("missing section")
		}
		if !v.IsArray() {
			return fmt.Errorf("want array, got %s", kindOf(v))
		}
		for i, entry := range v.Array() {
			if !entry.IsObject() {
				return fmt.Errorf("entry %d: want object, got %s", i, kindOf(entry))
			}
			if err := fn(m, &record{v: entry}); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return nil
	}
}

func kindOf(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "array"
	case v.Type == gjson.True || v.Type == gjson.False:
		return "boolean"
	}
	return strings.ToLower(v.Type.String())
}

// record reads named fields of one JSON object and keeps the first error.
type record struct {
	v   gjson.Result
	err error
}

func (r *record) field(key string) (gjson.Result, bool) {
	if r.err != nil {
		return gjson.Result{}, false
	}
	f := r.v.Get(key)
	if !f.Exists() {
		r.err = fmt.Errorf("missing field %q", key)
		return f, false
	}
	return f, true
}

func (r *record) typed(key string, want gjson.Type) (gjson.Result, bool) {
	f, ok := r.field(key)
	if !ok {
		return f, false
	}
	if f.Type != want {
		r.err = fmt.Errorf("field %q: want %s, got %s", key, strings.ToLower(want.String()), kindOf(f))
		return f, false
	}
	return f, true
}

func (r *record) str(key string) string {
	f, ok := r.typed(key, gjson.String)
	if !ok {
		return ""
	}
	return f.String()
}

func (r *record) float(key string) float64 {
	f, ok := r.typed(key, gjson.Number)
	if !ok {
		return 0
	}
	return f.Float()
}

func (r *record) int(key string) int64 {
	f, ok := r.typed(key, gjson.Number)
	if !ok {
		return 0
	}
	return f.Int()
}

func (r *record) has(key string) bool {
	return r.v.Get(key).Exists()
}

// object returns the nested object at key. Errors raised while reading the
// nested record are prefixed with key.
func (r *record) object(key string) *record {
	f, ok := r.field(key)
	if ok && !f.IsObject() {
		r.err = fmt.Errorf("field %q: want object, got %s", key, kindOf(f))
	}
	return &record{v: f, err: r.err}
}

func (r *record) array(key string) []gjson.Result {
	f, ok := r.field(key)
	if !ok {
		return nil
	}
	if !f.IsArray() {
		r.err = fmt.Errorf("field %q: want array, got %s", key, kindOf(f))
		return nil
	}
	return f.Array()
}

func (r *record) floats(key string) []float64 {
	items := r.array(key)
	out := make([]float64, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.Number {
			r.err = fmt.Errorf("field %q: item %d: want number, got %s", key, i, kindOf(item))
			return nil
		}
		out = append(out, item.Float())
	}
	return out
}

func (r *record) ints(key string) []int64 {
	items := r.array(key)
	out := make([]int64, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.Number {
			r.err = fmt.Errorf("field %q: item %d: want number, got %s", key, i, kindOf(item))
			return nil
		}
		out = append(out, item.Int())
	}
	return out
}

func parseNode(m *model.Model, r *record) error {
	n := model.Node{
		Name: r.str("name"),
		X:    r.float("x"),
		Y:    r.float("y"),
		Z:    r.float("z"),
	}
	if r.err != nil {
		return r.err
	}
	m.Nodes = append(m.Nodes, n)
	return nil
}

// parseJoint reads the joint and both of its segment lists. Each group is
// checked on its own so errors name the group.
func parseJoint(m *model.Model, r *record) error {
	jr := r.object("joint")
	j := model.Joint{
		Name:       jr.str("id"),
		Node:       jr.str("associatedNode"),
		InletList:  jr.str("inletName"),
		OutletList: jr.str("outletName"),
	}
	if jr.err != nil {
		return fmt.Errorf("joint: %w", jr.err)
	}

	in, err := parseSegmentList(r, "jointInlet")
	if err != nil {
		return err
	}
	out, err := parseSegmentList(r, "jointOutlet")
	if err != nil {
		return err
	}

	m.Joints = append(m.Joints, j)
	m.InletLists = append(m.InletLists, in)
	m.OutletLists = append(m.OutletLists, out)
	return nil
}

func parseSegmentList(r *record, key string) (model.SegmentList, error) {
	lr := r.object(key)
	l := model.SegmentList{
		Name:     lr.str("name"),
		Count:    lr.int("totalSegments"),
		Segments: lr.ints("segments"),
	}
	if lr.err != nil {
		return model.SegmentList{}, fmt.Errorf("%s: %w", key, lr.err)
	}
	return l, nil
}

func parseMaterial(m *model.Model, r *record) error {
	name, typ := r.str("name"), r.str("type")
	if r.err != nil {
		return r.err
	}
	kind, err := model.ParseMaterialKind(typ)
	if err != nil {
		return fmt.Errorf("material %s: %w", name, err)
	}

	mat := model.Material{
		Name:      name,
		Density:   r.float("density"),
		Viscosity: r.float("viscosity"),
		PRef:      r.float("pRef"),
		Exponent:  r.float("exponent"),
	}
	// All three parameters are required; NewLaw ignores the ones the law
	// does not use.
	var params [3]float64
	for i := range params {
		params[i] = r.float(fmt.Sprintf("param%d", i+1))
	}
	if r.err != nil {
		return r.err
	}

	if mat.Law, err = model.NewLaw(kind, params); err != nil {
		return fmt.Errorf("material %s: %w", mat.Name, err)
	}
	m.Materials = append(m.Materials, mat)
	return nil
}

func parseDataTable(m *model.Model, r *record) error {
	d := model.DataTable{
		Name:   r.str("name"),
		Kind:   r.str("type"),
		Values: r.floats("values"),
	}
	if r.err != nil {
		return r.err
	}
	m.DataTables = append(m.DataTables, d)
	return nil
}

func parseSegment(m *model.Model, r *record) error {
	s := model.Segment{
		Name:     r.str("name"),
		ID:       r.int("id"),
		Elements: r.int("totalElements"),
		InNode:   r.int("inNode"),
		OutNode:  r.int("outNode"),
	}
	if r.has(keySpatial) {
		s.Profile = parseProfile(r)
	} else {
		s.Profile = model.SimpleProfile(r.float("length"), r.float("inletArea"), r.float("outletArea"))
	}
	s.InitialFlow = r.float("flow")
	s.Material = r.str("materialName")
	s.LossType = r.str("lossType")
	s.BranchAngle = r.float("branchAngle")
	s.UpstreamSegment = r.int("upstreamSegment")
	s.BranchSegment = r.int("branchSegment")
	s.BoundaryType = r.str("boundaryType")
	s.DataTable = r.str("dataTableName")
	if r.err != nil {
		return r.err
	}
	m.Segments = append(m.Segments, s)
	return nil
}

const keySpatial = "spatialCharacteristics"

func parseProfile(r *record) model.Profile {
	items := r.array(keySpatial)
	samples := make([]model.Sample, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			r.err = fmt.Errorf("field %q: item %d: want object, got %s", keySpatial, i, kindOf(item))
			return model.Profile{}
		}
		sr := &record{v: item}
		s := model.Sample{Z: sr.float("z"), Area: sr.float("area")}
		if sr.err != nil {
			r.err = fmt.Errorf("field %q: item %d: %w", keySpatial, i, sr.err)
			return model.Profile{}
		}
		samples = append(samples, s)
	}
	return model.Profile{Samples: samples}
}

func parseSolverOptions(m *model.Model, v gjson.Result) error {
	if !v.Exists() {
		return fmt.Errorf("missing section")
	}
	if !v.IsObject() {
		return fmt.Errorf("want object, got %s", kindOf(v))
	}
	r := &record{v: v}
	opts := model.SolverOptions{
		TimeStep:       r.float("timeStep"),
		StepSize:       r.int("stepSize"),
		MaxStep:        r.int("maxStep"),
		QuadPoints:     r.int("quadPoints"),
		InletDataTable: r.str("inletDataTableName"),
		BoundaryType:   r.str("boundaryType"),
		Tolerance:      r.float("convergenceTolerance"),
		UseIV:          r.int("useIV"),
		UseStab:        r.int("useStab"),
	}
	if r.err != nil {
		return r.err
	}
	m.Solver = opts

	out, err := parseOutput(r)
	if err != nil {
		return err
	}
	m.Output = out
	return nil
}

func parseOutput(r *record) (*model.OutputSettings, error) {
	hasType, hasSubtype := r.has("outputType"), r.has("vtkOutputType")
	if !hasType {
		if hasSubtype {
			return nil, fmt.Errorf("field %q requires %q", "vtkOutputType", "outputType")
		}
		return nil, nil
	}

	name := r.str("outputType")
	if r.err != nil {
		return nil, r.err
	}
	if strings.EqualFold(name, outputNone) {
		if hasSubtype {
			return nil, fmt.Errorf("field %q requires an output type other than %s", "vtkOutputType", outputNone)
		}
		return nil, nil
	}
	typ, err := model.ParseOutputType(name)
	if err != nil {
		return nil, err
	}

	out := &model.OutputSettings{Type: typ}
	if hasSubtype {
		v := int(r.int("vtkOutputType"))
		if r.err != nil {
			return nil, r.err
		}
		if !model.ValidVTKSubtype(v) {
			return nil, fmt.Errorf("%w: vtkOutputType must be 0 or 1, got %d", errBadValue, v)
		}
		out.VTKSubtype = &v
	}
	return out, nil
}

package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model"
)

// LengthTolerance is the absolute difference between a segment's length and
// the distance of its end nodes above which the segment is flagged.
const LengthTolerance = 1e-14

// Warning codes.
const (
	WarnLengthMismatch errors.Code = "LENGTH_MISMATCH"
	WarnJointMapping   errors.Code = "JOINT_MAPPING"
)

// Options controls optional strictness of [Validate].
type Options struct {
	// StrictJointMapping turns a disagreement between a joint's explicit
	// node name and the node at the joint's position into an error.
	StrictJointMapping bool
}

// Report collects the non-fatal findings of a successful validation.
type Report struct {
	Warnings []errors.Warning `json:"warnings" yaml:"warnings"`

	// Flagged lists the segments whose length disagrees with the distance
	// of their end nodes, in model order.
	Flagged []string `json:"flagged_segments,omitempty" yaml:"flagged_segments,omitempty"`
}

// OK reports whether the validation produced no warnings.
func (r *Report) OK() bool { return len(r.Warnings) == 0 }

func (r *Report) warn(code errors.Code, format string, args ...any) {
	r.Warnings = append(r.Warnings, errors.Warnf(code, format, args...))
}

type check func(m *model.Model, opts Options, r *Report) error

// checks run in this order; the first error stops validation.
var checks = []check{
	checkUnique,
	checkAreas,
	checkProfiles,
	checkLengths,
	checkReferences,
	checkListCounts,
	checkJointMapping,
}

// Validate runs the consistency checks over m in a fixed order:
//
//  1. names of nodes, joints, inlet lists, outlet lists, materials, data
//     tables and segments are unique per kind, and segment ids are unique
//  2. no profile sample has a negative area
//  3. every profile has at least two samples with non-decreasing z; a
//     zero-length segment is accepted
//  4. segment lengths agree with the distance of their end nodes
//  5. segment node indices are in range and joint node names resolve
//  6. every segment list holds as many ids as it declares
//  7. each joint's node name matches the node at the joint's position
//
// Checks 4 and 7 only add warnings to the report, unless
// [Options.StrictJointMapping] is set. Any other failure is returned as a
// coded error naming the offending entity, and the report is nil.
func Validate(m *model.Model, opts Options) (*Report, error) {
	r := &Report{}
	for _, c := range checks {
		if err := c(m, opts, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func checkUnique(m *model.Model, _ Options, _ *Report) error {
	names := func(n int, at func(int) string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = at(i)
		}
		return out
	}
	listNames := func(ls []model.SegmentList) []string {
		return names(len(ls), func(i int) string { return ls[i].Name })
	}

	groups := []struct {
		kind  string
		names []string
	}{
		{"node name", names(len(m.Nodes), func(i int) string { return m.Nodes[i].Name })},
		{"joint name", names(len(m.Joints), func(i int) string { return m.Joints[i].Name })},
		{"joint inlet name", listNames(m.InletLists)},
		{"joint outlet name", listNames(m.OutletLists)},
		{"material name", names(len(m.Materials), func(i int) string { return m.Materials[i].Name })},
		{"data table name", names(len(m.DataTables), func(i int) string { return m.DataTables[i].Name })},
		{"segment name", names(len(m.Segments), func(i int) string { return m.Segments[i].Name })},
		{"segment id", names(len(m.Segments), func(i int) string { return strconv.FormatInt(m.Segments[i].ID, 10) })},
	}
	for _, g := range groups {
		if dup, ok := firstDuplicate(g.names); ok {
			return errors.New(errors.ErrCodeDuplicate, "duplicate %s: %s", g.kind, dup)
		}
	}
	return nil
}

// firstDuplicate returns the earliest element that occurs again later.
func firstDuplicate(names []string) (string, bool) {
	seen := make(map[string]int, len(names))
	first, dupAt := "", len(names)
	for i, n := range names {
		if j, ok := seen[n]; ok {
			if j < dupAt {
				first, dupAt = n, j
			}
			continue
		}
		seen[n] = i
	}
	return first, dupAt < len(names)
}

func checkAreas(m *model.Model, _ Options, _ *Report) error {
	for _, s := range m.Segments {
		for i, smp := range s.Profile.Samples {
			if smp.Area >= 0 {
				continue
			}
			switch {
			case s.Profile.IsSimple() && i == 0:
				return errors.New(errors.ErrCodeInvalidValue, "negative inlet area in segment: %s", s.Name)
			case s.Profile.IsSimple():
				return errors.New(errors.ErrCodeInvalidValue, "negative outlet area in segment: %s", s.Name)
			}
			return errors.New(errors.ErrCodeInvalidValue, "negative area at sample %d in segment: %s", i, s.Name)
		}
	}
	return nil
}

func checkProfiles(m *model.Model, _ Options, _ *Report) error {
	for _, s := range m.Segments {
		p := s.Profile
		if len(p.Samples) < 2 {
			return errors.New(errors.ErrCodeInvalidStructure,
				"segment %s: profile needs at least 2 samples, got %d", s.Name, len(p.Samples))
		}
		for i := 1; i < len(p.Samples); i++ {
			if p.Samples[i].Z < p.Samples[i-1].Z {
				return errors.New(errors.ErrCodeInvalidValue,
					"segment %s: profile z decreases at sample %d", s.Name, i)
			}
		}
	}
	return nil
}

// checkLengths flags segments whose length differs from the distance of
// their end nodes. Segments with out-of-range nodes are left to
// checkReferences.
func checkLengths(m *model.Model, _ Options, r *Report) error {
	for _, s := range m.Segments {
		in, out, ok := endpoints(m, s)
		if !ok {
			continue
		}
		dist := in.Position().Distance(out.Position())
		if math.Abs(s.Length()-dist) > LengthTolerance {
			r.Flagged = append(r.Flagged, s.Name)
		}
	}
	if len(r.Flagged) > 0 {
		r.warn(WarnLengthMismatch,
			"%d of %d segments have a length that differs from their end node distance (%s); regenerate lengths from node positions",
			len(r.Flagged), len(m.Segments), summarize(r.Flagged, 5))
	}
	return nil
}

func endpoints(m *model.Model, s model.Segment) (in, out model.Node, ok bool) {
	n := int64(len(m.Nodes))
	if s.InNode < 0 || s.InNode >= n || s.OutNode < 0 || s.OutNode >= n {
		return model.Node{}, model.Node{}, false
	}
	return m.Nodes[s.InNode], m.Nodes[s.OutNode], true
}

// summarize joins up to limit names and notes how many were left out.
func summarize(names []string, limit int) string {
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(names[:limit], ", "), len(names)-limit)
}

func checkReferences(m *model.Model, _ Options, _ *Report) error {
	for _, s := range m.Segments {
		if _, _, ok := endpoints(m, s); !ok {
			return errors.New(errors.ErrCodeUnresolved,
				"missing node in segment: %s (in %d, out %d, %d nodes)", s.Name, s.InNode, s.OutNode, len(m.Nodes))
		}
	}
	for _, j := range m.Joints {
		if m.NodeIndex(j.Node) < 0 {
			return errors.New(errors.ErrCodeUnresolved, "missing node %s in joint: %s", j.Node, j.Name)
		}
	}
	return nil
}

func checkListCounts(m *model.Model, _ Options, _ *Report) error {
	lists := []struct {
		kind  string
		lists []model.SegmentList
	}{
		{"joint inlet", m.InletLists},
		{"joint outlet", m.OutletLists},
	}
	for _, g := range lists {
		for _, l := range g.lists {
			want := max(l.Count, 0)
			if int64(len(l.Segments)) != want {
				return errors.New(errors.ErrCodeInvalidStructure,
					"%s %s declares %d segments but lists %d", g.kind, l.Name, l.Count, len(l.Segments))
			}
		}
	}
	return nil
}

// checkJointMapping compares each joint's explicit node with the node at
// the joint's own index, the association older tools assumed.
func checkJointMapping(m *model.Model, opts Options, r *Report) error {
	var mismatched []string
	for i, j := range m.Joints {
		if i >= len(m.Nodes) || m.Nodes[i].Name == j.Node {
			continue
		}
		if opts.StrictJointMapping {
			return errors.New(errors.ErrCodeInvalidStructure,
				"joint %s names node %s but is at the position of node %s", j.Name, j.Node, m.Nodes[i].Name)
		}
		mismatched = append(mismatched, j.Name)
	}
	if len(mismatched) > 0 {
		r.warn(WarnJointMapping,
			"%d joints name a node other than the node at their position (%s); the named node is used",
			len(mismatched), summarize(mismatched, 5))
	}
	return nil
}

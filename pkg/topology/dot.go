package topology

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/vascnet/netinput/pkg/model"
)

// Options configures topology rendering.
type Options struct {
	// Detailed adds length and areas to segment labels and coordinates to
	// node labels. When false, only names are shown.
	Detailed bool
}

// Format is an image format supported by [Render].
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// graphAttrs lay the tree out from the inlet downward.
var graphAttrs = []string{
	`rankdir=TB`,
	`bgcolor="transparent"`,
	`fontname="Helvetica"`,
	`node [shape=circle, style=filled, fillcolor=white, fontname="Helvetica", fontsize=14]`,
	`edge [fontname="Helvetica", fontsize=12, arrowsize=0.7]`,
}

// ToDOT converts the network to Graphviz DOT. Nodes become vertices keyed
// by index, so duplicate node names still render. Segments become directed
// edges from inlet to outlet node. Joint nodes are filled and list their
// joint names. Segment endpoints outside the node list are drawn as dashed
// placeholder vertices.
func ToDOT(m *model.Model, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	for _, attr := range graphAttrs {
		fmt.Fprintf(&buf, "  %s;\n", attr)
	}
	if m.Name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", m.Name)
	}
	buf.WriteString("\n")

	joints := jointsByNode(m)
	for i, n := range m.Nodes {
		label := n.Name
		if opts.Detailed {
			label += fmt.Sprintf("\n(%s, %s, %s)", num(n.X), num(n.Y), num(n.Z))
		}
		attrs := []string{}
		if js := joints[n.Name]; len(js) > 0 {
			label += "\n" + strings.Join(js, ", ")
			attrs = append(attrs, "shape=doublecircle", "fillcolor=lightblue")
		}
		attrs = append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
		fmt.Fprintf(&buf, "  %s [%s];\n", vertexID(int64(i)), strings.Join(attrs, ", "))
	}

	missing := map[int64]bool{}
	for _, s := range m.Segments {
		for _, idx := range []int64{s.InNode, s.OutNode} {
			if (idx < 0 || idx >= int64(len(m.Nodes))) && !missing[idx] {
				missing[idx] = true
				fmt.Fprintf(&buf, "  %s [label=%q, style=dashed, fontcolor=red];\n", vertexID(idx), "missing "+strconv.FormatInt(idx, 10))
			}
		}
	}

	buf.WriteString("\n")
	for _, s := range m.Segments {
		fmt.Fprintf(&buf, "  %s -> %s [label=%q];\n", vertexID(s.InNode), vertexID(s.OutNode), segmentLabel(s, opts.Detailed))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// jointsByNode groups joint names by the node they name.
func jointsByNode(m *model.Model) map[string][]string {
	out := make(map[string][]string, len(m.Joints))
	for _, j := range m.Joints {
		out[j.Node] = append(out[j.Node], j.Name)
	}
	return out
}

func vertexID(idx int64) string {
	if idx < 0 {
		return fmt.Sprintf("nm%d", -idx)
	}
	return fmt.Sprintf("n%d", idx)
}

func segmentLabel(s model.Segment, detailed bool) string {
	label := fmt.Sprintf("%s [%d]", s.Name, s.ID)
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nL=%s A=%s..%s", label, num(s.Length()), num(s.Profile.InletArea()), num(s.Profile.OutletArea()))
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatSVG)
}

// Render renders a DOT graph in the given format using Graphviz.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported format %q (must be svg or png)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return pixelSize(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe = regexp.MustCompile(`<svg\b[^>]*>`)
	ptSizeRe = regexp.MustCompile(`\b(width|height)="([0-9.]+)pt"`)
)

// pixelSize rewrites the point-based width and height of the root svg
// element as whole pixels, so browsers show the drawing at its natural
// size. The viewBox is left alone.
func pixelSize(svg []byte) []byte {
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	tag := ptSizeRe.ReplaceAllFunc(svg[loc[0]:loc[1]], func(attr []byte) []byte {
		m := ptSizeRe.FindSubmatch(attr)
		v, err := strconv.ParseFloat(string(m[2]), 64)
		if err != nil {
			return attr
		}
		return fmt.Appendf(nil, `%s="%.0f"`, m[1], v)
	})

	out := make([]byte, 0, len(svg)-(loc[1]-loc[0])+len(tag))
	out = append(out, svg[:loc[0]]...)
	out = append(out, tag...)
	return append(out, svg[loc[1]:]...)
}

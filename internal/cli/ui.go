package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vascnet/netinput/pkg/model"
)

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber = lipgloss.NewStyle().Foreground(colorTeal)
	styleKey    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// status is the leading icon of a one-line message.
type status struct {
	icon  string
	style lipgloss.Style
	body  lipgloss.Style
}

var (
	plain = lipgloss.NewStyle()

	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(colorGreen), plain}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(colorRed), plain}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(colorAmber), lipgloss.NewStyle().Foreground(colorAmber)}
	statusInfo    = status{"›", lipgloss.NewStyle().Foreground(colorGray), plain}
)

func (s status) print(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.style.Render(s.icon)+" "+s.body.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(w io.Writer, format string, args ...any) { statusSuccess.print(w, format, args...) }

func printError(w io.Writer, format string, args ...any) { statusError.print(w, format, args...) }

func printWarning(w io.Writer, format string, args ...any) { statusWarning.print(w, format, args...) }

func printInfo(w io.Writer, format string, args ...any) { statusInfo.print(w, format, args...) }

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, "  "+styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats prints entity counts on a single line, skipping empty kinds.
func printStats(w io.Writer, counts model.Counts) {
	var parts []string
	for _, kv := range []struct {
		n    int
		noun string
	}{
		{counts.Nodes, "nodes"},
		{counts.Joints, "joints"},
		{counts.Segments, "segments"},
		{counts.Materials, "materials"},
		{counts.DataTables, "data tables"},
	} {
		if kv.n > 0 {
			parts = append(parts, styleNumber.Render(fmt.Sprint(kv.n))+" "+styleDim.Render(kv.noun))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, styleDim.Render("empty network"))
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, styleDim.Render(" · ")))
}

// printCacheStatus prints whether the model came from the cache.
func printCacheStatus(w io.Writer, cached bool) {
	label, color := "fresh", colorGray
	if cached {
		label, color = "cached", colorGreen
	}
	fmt.Fprintln(w, "  "+lipgloss.NewStyle().Foreground(color).Render(label))
}

package model

import (
	"fmt"
	"strings"
)

// OutputType selects the result writers of the downstream post-processor.
type OutputType int

const (
	OutputText OutputType = iota + 1
	OutputVTK
	OutputBoth
)

// String returns the canonical upper-case keyword for t.
func (t OutputType) String() string {
	switch t {
	case OutputText:
		return "TEXT"
	case OutputVTK:
		return "VTK"
	case OutputBoth:
		return "BOTH"
	}
	return fmt.Sprintf("OutputType(%d)", int(t))
}

// ParseOutputType matches s case-insensitively against TEXT, VTK and BOTH.
func ParseOutputType(s string) (OutputType, error) {
	switch strings.ToUpper(s) {
	case "TEXT":
		return OutputText, nil
	case "VTK":
		return OutputVTK, nil
	case "BOTH":
		return OutputBoth, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOutputType, s)
}

// OutputSettings carries the output-format selection. It is set once by the
// parser and read once by whoever consumes the assembled model.
type OutputSettings struct {
	Type OutputType
	// VTKSubtype is nil when not given. Valid values are 0 and 1.
	VTKSubtype *int
}

// ValidVTKSubtype reports whether v is an accepted VTK subtype.
func ValidVTKSubtype(v int) bool { return v == 0 || v == 1 }

// DefaultOutput is used by consumers when a model carries no selection.
func DefaultOutput() OutputSettings { return OutputSettings{Type: OutputText} }

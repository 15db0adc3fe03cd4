package pipeline

import (
	"bytes"
	"fmt"
	"io"

	netio "github.com/vascnet/netinput/pkg/io"
	"github.com/vascnet/netinput/pkg/legacy"
	"github.com/vascnet/netinput/pkg/model"
)

// Parse builds the canonical model from data in the given format.
func Parse(data []byte, format Format, opts Options) (*model.Model, error) {
	switch format {
	case FormatLegacy:
		return legacy.Read(bytes.NewReader(data), legacy.Options{StrictNumbers: opts.StrictNumbers})
	case FormatJSON:
		return netio.ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

// Encode writes m to w in the given format.
func Encode(m *model.Model, format Format, w io.Writer) error {
	switch format {
	case FormatLegacy:
		return legacy.Write(m, w)
	case FormatJSON:
		return netio.WriteJSON(m, w)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

// Convert writes m to a file at path in the given format.
func Convert(m *model.Model, format Format, path string) error {
	switch format {
	case FormatLegacy:
		return legacy.Export(m, path)
	case FormatJSON:
		return netio.ExportJSON(m, path)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

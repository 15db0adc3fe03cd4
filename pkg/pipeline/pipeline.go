// Package pipeline runs a network description through the input pipeline.
//
// A run has up to four stages:
//
//  1. Load: pick the parser for the input form and build the canonical model
//  2. Check: validate the model, collecting non-fatal warnings
//  3. Echo: write the human-readable echo and the JSON echo of the model
//  4. Plan: assemble the model into the sequence of solver construction calls
//
// Each stage can be run on its own, or all of them with [Runner.Execute]:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, "bifurcation.in", pipeline.Options{EchoDir: "."})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result.Plan.WriteJSON(os.Stdout)
//
// Parsed models and plans are cached by content hash, so repeated runs on
// an unchanged input skip the parser.
package pipeline

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vascnet/netinput/pkg/assemble"
	"github.com/vascnet/netinput/pkg/model"
	"github.com/vascnet/netinput/pkg/validate"
)

// Format names an input or output representation of a network.
type Format string

// Supported formats.
const (
	FormatLegacy Format = "legacy"
	FormatJSON   Format = "json"
)

// Echo file names written by [Runner.Echo].
const (
	EchoTextFile = "echo.out"
	EchoJSONFile = "echo.json"
)

// ValidFormats is the set of supported formats.
var ValidFormats = map[Format]bool{
	FormatLegacy: true,
	FormatJSON:   true,
}

// ParseFormat checks that s names a supported format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !ValidFormats[f] {
		return "", fmt.Errorf("invalid format: %q (must be one of: legacy, json)", s)
	}
	return f, nil
}

// DetectFormat picks the format of an input from its file extension, and
// otherwise from its first non-blank byte: '{' means JSON, anything else
// legacy text.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".in", ".txt", ".dat":
		return FormatLegacy
	}
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatLegacy
}

// Options configures a pipeline run.
type Options struct {
	// Format of the input. Empty means detect it with [DetectFormat].
	Format Format `json:"format,omitempty" yaml:"format,omitempty"`

	// StrictNumbers rejects legacy numeric fields that are not entirely
	// numeric instead of reading them as their numeric prefix.
	StrictNumbers bool `json:"strict_numbers,omitempty" yaml:"strict_numbers,omitempty"`

	// StrictJointMapping makes a joint whose node name disagrees with the
	// node at its position a validation error.
	StrictJointMapping bool `json:"strict_joint_mapping,omitempty" yaml:"strict_joint_mapping,omitempty"`

	// Refresh bypasses cached results; fresh results are still stored.
	Refresh bool `json:"refresh,omitempty" yaml:"refresh,omitempty"`

	// EchoDir is where [Runner.Execute] writes the echo files. Empty
	// disables echoing.
	EchoDir string `json:"echo_dir,omitempty" yaml:"echo_dir,omitempty"`
}

// Validate checks the option values.
func (o Options) Validate() error {
	if o.Format != "" && !ValidFormats[o.Format] {
		return fmt.Errorf("invalid format: %q (must be one of: legacy, json)", o.Format)
	}
	return nil
}

func (o Options) validateOptions() validate.Options {
	return validate.Options{StrictJointMapping: o.StrictJointMapping}
}

// Input is a loaded network description.
type Input struct {
	Source string
	Format Format
	Model  *model.Model

	// InputHash is the SHA-256 of the input bytes.
	InputHash string

	// ModelHash is the SHA-256 of the canonical JSON encoding of Model, or
	// empty when the model cannot be encoded.
	ModelHash string

	CacheHit  bool
	ParseTime time.Duration
}

// Result contains the outputs of [Runner.Execute].
type Result struct {
	RunID  string
	Input  *Input
	Report *validate.Report
	Plan   *assemble.Plan

	// Echoes lists the echo files written, if any.
	Echoes []string

	Stats Stats
}

// Stats contains stage timings.
type Stats struct {
	ParseTime    time.Duration
	ValidateTime time.Duration
	AssembleTime time.Duration
}

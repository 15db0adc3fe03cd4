package model

import (
	"fmt"
	"strings"
)

// MaterialKind names a pressure-area law.
type MaterialKind int

const (
	// MaterialOlufsen is the three-parameter exponential stiffness law.
	MaterialOlufsen MaterialKind = iota + 1
	// MaterialLinear is the one-parameter linear law.
	MaterialLinear
)

var materialKindNames = map[MaterialKind]string{
	MaterialOlufsen: "OLUFSEN",
	MaterialLinear:  "LINEAR",
}

// String returns the canonical upper-case keyword for k.
func (k MaterialKind) String() string {
	if s, ok := materialKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("MaterialKind(%d)", int(k))
}

// ParamCount returns how many shape parameters the law consumes.
func (k MaterialKind) ParamCount() int {
	switch k {
	case MaterialOlufsen:
		return 3
	case MaterialLinear:
		return 1
	}
	return 0
}

// ParseMaterialKind matches s case-insensitively against the known laws.
func ParseMaterialKind(s string) (MaterialKind, error) {
	switch strings.ToUpper(s) {
	case "OLUFSEN":
		return MaterialOlufsen, nil
	case "LINEAR":
		return MaterialLinear, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMaterialKind, s)
}

// Law is a pressure-area law. The set of implementations is closed:
// [OlufsenLaw] and [LinearLaw].
type Law interface {
	Kind() MaterialKind
	// Params returns the shape parameters padded with zeros to three values.
	Params() [3]float64
	law()
}

// OlufsenLaw is Olufsen's exponential stiffness law Eh/r = k1*exp(k2*r) + k3.
type OlufsenLaw struct {
	K1, K2, K3 float64
}

func (OlufsenLaw) Kind() MaterialKind   { return MaterialOlufsen }
func (l OlufsenLaw) Params() [3]float64 { return [3]float64{l.K1, l.K2, l.K3} }
func (OlufsenLaw) law()                 {}

// LinearLaw is the linear pressure-area law with a single stiffness term.
type LinearLaw struct {
	EHR float64
}

func (LinearLaw) Kind() MaterialKind   { return MaterialLinear }
func (l LinearLaw) Params() [3]float64 { return [3]float64{l.EHR, 0, 0} }
func (LinearLaw) law()                 {}

// NewLaw builds the law of the given kind from up to three parameters.
// Extra parameters beyond the kind's count are ignored.
func NewLaw(kind MaterialKind, params [3]float64) (Law, error) {
	switch kind {
	case MaterialOlufsen:
		return OlufsenLaw{K1: params[0], K2: params[1], K3: params[2]}, nil
	case MaterialLinear:
		return LinearLaw{EHR: params[0]}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMaterialKind, kind)
}

// Material is a named wall material.
type Material struct {
	Name      string
	Density   float64
	Viscosity float64
	PRef      float64
	Exponent  float64
	Law       Law
}

// Kind returns the kind of the material's law, or zero when Law is nil.
func (m Material) Kind() MaterialKind {
	if m.Law == nil {
		return 0
	}
	return m.Law.Kind()
}

// Params returns the law's parameters padded to three values.
func (m Material) Params() [3]float64 {
	if m.Law == nil {
		return [3]float64{}
	}
	return m.Law.Params()
}

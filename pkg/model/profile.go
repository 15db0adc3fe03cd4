package model

// Sample is one (z-position, cross-sectional area) measurement along a
// segment.
type Sample struct {
	Z    float64 `json:"z" yaml:"z"`
	Area float64 `json:"area" yaml:"area"`
}

// Profile is the ordered spatial description of a segment. The first and
// last samples are the inlet and outlet by convention. A valid profile has
// at least two samples; the validator enforces this.
type Profile struct {
	Samples []Sample
}

// SimpleProfile builds the two-sample profile described by the legacy
// (length, inlet area, outlet area) triple. The inlet sits at z = 0.
func SimpleProfile(length, inletArea, outletArea float64) Profile {
	return Profile{Samples: []Sample{
		{Z: 0, Area: inletArea},
		{Z: length, Area: outletArea},
	}}
}

// Length returns outlet z minus inlet z, or 0 for fewer than two samples.
func (p Profile) Length() float64 {
	if len(p.Samples) < 2 {
		return 0
	}
	return p.Samples[len(p.Samples)-1].Z - p.Samples[0].Z
}

// InletArea returns the area of the first sample.
func (p Profile) InletArea() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return p.Samples[0].Area
}

// OutletArea returns the area of the last sample.
func (p Profile) OutletArea() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return p.Samples[len(p.Samples)-1].Area
}

// IsSimple reports whether p is exactly representable by the legacy
// (length, inlet area, outlet area) triple.
func (p Profile) IsSimple() bool {
	return len(p.Samples) == 2 && p.Samples[0].Z == 0
}

// Z returns the sample positions.
func (p Profile) Z() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = s.Z
	}
	return out
}

// Areas returns the sample areas.
func (p Profile) Areas() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = s.Area
	}
	return out
}

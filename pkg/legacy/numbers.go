package legacy

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/vascnet/netinput/pkg/errors"
)

var (
	floatPrefixRE = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	hexPrefixRE   = regexp.MustCompile(`^0[xX]([0-9a-fA-F]+\.?[0-9a-fA-F]*|\.[0-9a-fA-F]+)([pP][+-]?\d+)?`)
	intPrefixRE   = regexp.MustCompile(`^[+-]?\d+`)
)

// numbers converts numeric fields. In lenient mode it follows the C atof and
// atoi rules: the longest numeric prefix is used and a token without one
// reads as zero. Floats also accept inf, infinity, nan and hex mantissas
// such as 0x10 or 0x1.8p1. In strict mode the whole token must be a number.
type numbers struct {
	strict bool
}

func (n numbers) float(field, tok string) (float64, error) {
	if n.strict {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidNumber, "%s: %q is not a number", field, tok)
		}
		return v, nil
	}
	return atof(tok), nil
}

func atof(tok string) float64 {
	s, sign := tok, 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "inf"):
		return math.Inf(int(sign))
	case strings.HasPrefix(lower, "nan"):
		return math.NaN()
	}

	if m := hexPrefixRE.FindStringSubmatch(s); m != nil {
		hex := m[0]
		if m[2] == "" {
			hex += "p0"
		}
		v, _ := strconv.ParseFloat(hex, 64)
		return sign * v
	}

	prefix := floatPrefixRE.FindString(s)
	if prefix == "" {
		return 0
	}
	// Out-of-range values come back as ±Inf, as with atof.
	v, _ := strconv.ParseFloat(prefix, 64)
	return sign * v
}

func (n numbers) int(field, tok string) (int64, error) {
	if n.strict {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidNumber, "%s: %q is not an integer", field, tok)
		}
		return v, nil
	}
	prefix := intPrefixRE.FindString(tok)
	if prefix == "" {
		return 0, nil
	}
	// Out-of-range values saturate.
	v, _ := strconv.ParseInt(prefix, 10, 64)
	return v, nil
}

// count reads an integer that is written as a float in some inputs, such as
// the solver step counts. The value is truncated toward zero.
func (n numbers) count(field, tok string) (int64, error) {
	v, err := n.float(field, tok)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

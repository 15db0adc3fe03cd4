// Package validate checks a parsed network model for internal consistency.
//
// Parsers only check the shape of each record. [Validate] checks the model
// as a whole: unique names, sane segment profiles, segment lengths against
// node positions, and node references. It is run after parsing and before
// serialization or assembly:
//
//	m, err := legacy.Import("network.in", legacy.Options{})
//	if err != nil {
//	    return err
//	}
//	report, err := validate.Validate(m, validate.Options{})
//	if err != nil {
//	    return err // fatal: duplicate, bad area, unresolved node, ...
//	}
//	for _, w := range report.Warnings {
//	    logger.Warn(w.String())
//	}
//
// Errors carry codes from [github.com/vascnet/netinput/pkg/errors]. The
// length check never fails; mismatching segments are collected into a
// single [WarnLengthMismatch] warning.
package validate

// Package legacy reads and writes the line-oriented network format.
//
// # Format
//
// Each non-blank line is a record. Its first field is a keyword matched
// case-insensitively; fields are separated by any mix of spaces, commas and
// tabs. Lines whose first field starts with '#' are comments.
//
//	MODEL simpleArtery
//	NODE 0 0.0 0.0 0.0
//	NODE 1 0.0 0.0 -20.0
//	SEGMENT ARTERY 0 20.0 50 0 1 2.0 2.0 0.0 MAT1 NONE 0.0 0 0 RESISTANCE RESTABLE
//	DATATABLE RESTABLE LIST
//	0.0 100.0
//	ENDDATATABLE
//	MATERIAL MAT1 OLUFSEN 1.06 0.04 113324.0 1.0 2.0e7 -22.5267 8.65e5
//	SOLVEROPTIONS 0.01 10 1000 4 INLETDATA FLOW 1.0e-6 1 1
//
// A DATATABLE record opens a block of numeric lines that ends at
// ENDDATATABLE, at the first blank line, or at the end of input.
//
// # Numbers
//
// By default numeric fields follow the C library conversions the format was
// designed around: "12abc" reads as 12, "1.5" in an integer field reads as 1
// and a field with no numeric prefix reads as 0. Set
// [Options.StrictNumbers] to reject such fields instead.
//
// # Errors
//
// [Read] stops at the first problem and returns a [*SyntaxError] carrying
// the line number and keyword. The wrapped error has a code from
// [github.com/vascnet/netinput/pkg/errors]:
//
//	var se *legacy.SyntaxError
//	if errors.As(err, &se) {
//	    fmt.Println(se.Line, se.Keyword)
//	}
//
// # Writing
//
// [Write] produces a file that [Read] parses back into an equal model, so
// the package can convert structured documents back to the line format.
package legacy

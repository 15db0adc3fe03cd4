package legacy

import (
	"bufio"
	"io"
)

// maxLineSize bounds a single input line. Data tables are sometimes written
// on one line, so the default scanner limit is too small.
const maxLineSize = 16 << 20

// lineCursor is a position in a fully buffered input. Cursors are values:
// sub-parsers take one and return the advanced cursor.
type lineCursor struct {
	lines []string
	pos   int // index of the next line to read
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// next returns the next line and its 1-based number. ok is false at the
// end of input.
func (c lineCursor) next() (line string, lineNo int, rest lineCursor, ok bool) {
	if c.pos >= len(c.lines) {
		return "", c.pos, c, false
	}
	return c.lines[c.pos], c.pos + 1, lineCursor{lines: c.lines, pos: c.pos + 1}, true
}

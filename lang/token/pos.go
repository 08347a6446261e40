package token

import "fmt"

// Position names a 1-based source line within a file, for rendering
// diagnostics. The spec this compiler implements tracks only line numbers,
// not columns, so unlike a typical scanner position this carries no column
// bits and no separate compact/offset form.
type Position struct {
	Filename string
	Line     int
}

// IsValid reports whether the position has a known line.
func (p Position) IsValid() bool { return p.Line > 0 }

// String renders the position as "file:line", or just "line N" if the
// filename is empty, or "-" if the position is not valid.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.Filename == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

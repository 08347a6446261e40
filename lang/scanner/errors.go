// Error and ErrorList mirror the shape of go/scanner's Error and ErrorList,
// adapted to this compiler's line-only token.Position.
package scanner

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"github.com/dbarros/pasvm/lang/token"
)

// Error is a single diagnostic at a source position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e Error) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// ErrorList is a sortable, printable collection of *Error.
type ErrorList []*Error

// Add appends an error with the given position and message.
func (p *ErrorList) Add(pos token.Position, msg string) {
	*p = append(*p, &Error{Pos: pos, Msg: msg})
}

// Sort orders the list by filename then line, stably so that diagnostics at
// the same position keep their relative order.
func (p ErrorList) Sort() {
	slices.SortStableFunc(p, func(a, b *Error) int {
		if a.Pos.Filename != b.Pos.Filename {
			if a.Pos.Filename < b.Pos.Filename {
				return -1
			}
			return 1
		}
		return a.Pos.Line - b.Pos.Line
	})
}

func (p ErrorList) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
	}
}

// Err returns nil if the list is empty, p otherwise.
func (p ErrorList) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// PrintError prints each error in err, one per line, to w. If err is not an
// ErrorList, it is printed as a single line.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintln(w, e)
		}
		return
	}
	if err != nil {
		fmt.Fprintln(w, err)
	}
}

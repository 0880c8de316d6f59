package diag

import (
	"fmt"

	"dwislpy/common"
)

// Error is a located message: the error value the interpreter returns for a
// run-time fault (the scanner, parser, and checker report the same kind of
// location-plus-message pair through Context.Error instead). It is not
// recovered from locally -- it propagates to the top-level driver, which
// either prints it or, in --test mode, swallows it behind the literal line
// "ERROR".
type Error struct {
	Locn    common.Locn
	Message string
}

func (e *Error) Error() string {
	if e.Locn.Line > 0 && e.Locn.Col > 0 {
		return fmt.Sprintf("%s: %s", e.Locn, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Locn.Source, e.Message)
}

// NewError builds a located error, formatting Message the way fmt.Sprintf
// does.
func NewError(locn common.Locn, format string, args ...interface{}) *Error {
	return &Error{Locn: locn, Message: fmt.Sprintf(format, args...)}
}

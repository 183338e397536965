package template

import (
	"fmt"
	"strings"

	juju "github.com/juju/errors"
)

// ErrorKind tags the class of failure an Error represents. Kinds are not
// distinct Go types (per the tagged-variant design in §9) so callers can
// switch on Error.Kind without a type assertion per kind.
type ErrorKind int

const (
	// KindInternal marks a violated engine invariant; it should never
	// surface from a correctly implemented engine.
	KindInternal ErrorKind = iota
	KindParse
	KindUnknownVariable
	KindType
	KindIndex
	KindArithmetic
	KindUser
	KindNotFound
	KindAbort
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindUnknownVariable:
		return "UnknownVariable"
	case KindType:
		return "TypeError"
	case KindIndex:
		return "IndexError"
	case KindArithmetic:
		return "ArithmeticError"
	case KindUser:
		return "UserError"
	case KindNotFound:
		return "NotFound"
	case KindAbort:
		return "AbortError"
	default:
		return "InternalError"
	}
}

// frame is one entry of a template-chain: the template name and line at
// which an error passed through (outer template first, then each nested
// include, per §7 "user-visible behavior").
type frame struct {
	Template string
	Line     int
}

// Error is the structured error type every failure in this package is
// reported as: it carries the error kind, the template name and source
// line of the nearest enclosing node, and (once it has propagated through
// one or more includes) the full template chain for diagnostics.
type Error struct {
	Kind     ErrorKind
	Template string
	Line     int
	Column   int
	Sender   string
	chain    []frame
	cause    error
}

func newError(kind ErrorKind, template string, line, col int, sender string, cause error) *Error {
	return &Error{
		Kind:     kind,
		Template: template,
		Line:     line,
		Column:   col,
		Sender:   sender,
		cause:    juju.Trace(cause),
	}
}

func newErrorf(kind ErrorKind, template string, line, col int, sender, format string, args ...any) *Error {
	return newError(kind, template, line, col, sender, fmt.Errorf(format, args...))
}

// Error implements the error interface. Format: "[Kind (where: sender) in
// template | Line N Col M] message", followed by the include chain (if
// any) as "\n\tvia template:line" entries, outermost first.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(e.Kind.String())
	if e.Sender != "" {
		b.WriteString(" (where: ")
		b.WriteString(e.Sender)
		b.WriteByte(')')
	}
	if e.Template != "" {
		b.WriteString(" in ")
		b.WriteString(e.Template)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " | Line %d Col %d", e.Line, e.Column)
	}
	b.WriteString("] ")
	if e.cause != nil {
		b.WriteString(e.cause.Error())
	}
	for _, f := range e.chain {
		fmt.Fprintf(&b, "\n\tvia %s:%d", f.Template, f.Line)
	}
	return b.String()
}

// Unwrap exposes the original cause (with juju/errors' trace wrapper
// removed) so errors.Is/errors.As keep working across this boundary.
func (e *Error) Unwrap() error {
	return juju.Cause(e.cause)
}

// withFrame prepends one include-frame to the template chain and returns
// the same Error (errors propagate by reference as they unwind the scope
// stack, per §7 "Propagation"). Frames are added innermost first while
// unwinding, so prepending keeps the chain outermost first.
func (e *Error) withFrame(template string, line int) *Error {
	e.chain = append([]frame{{Template: template, Line: line}}, e.chain...)
	return e
}

// asTemplateError reports whether err is one of this package's structured
// errors (the only kind a SET/GLOBAL/TEMPLATE/PRIVATE else-clause is
// permitted to catch, per §4.6/§7).
func asTemplateError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

// IsAbort reports whether err itself is an AbortError raised by an
// abort predicate, the signal the renderer uses to unwind without being
// mistaken for an ordinary template error.
func IsAbort(err error) bool {
	e, ok := asTemplateError(err)
	return ok && e.Kind == KindAbort
}

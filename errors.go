// errors.go: structured errors and caret-snippet rendering
//
// One error type covers the whole pipeline. Reader errors carry the 1-based
// line/column of the token start; evaluation errors carry no position (values
// do not remember where they were read). End of input is not an error at all:
// the reader returns io.EOF, a control signal the driver handles itself.
//
// `WrapErrorWithSource` turns a positioned error into a readable, Python-style
// snippet with a caret pointing at the offending column:
//
//	SYNTAX ERROR at 3:12: unexpected ']'
//
//	   2 | (def xs
//	   3 |   (list 1 2]
//	     |            ^
//	   4 | )
//
// Errors without a position pass through unchanged.
package lisp

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrKind classifies an Error per the runtime's taxonomy.
type ErrKind int

const (
	// ErrSyntax: the reader met a reserved or unexpected delimiter. The
	// remainder of the line has already been discarded; the next Read resumes
	// after it.
	ErrSyntax ErrKind = iota
	// ErrIncomplete: input ended in the middle of a form. More input could
	// complete it; interactive drivers probe for this to prompt continuation.
	ErrIncomplete
	// ErrType: a checked accessor or primitive was applied to the wrong
	// variant.
	ErrType
	// ErrUnbound: symbol lookup failed during evaluation.
	ErrUnbound
	// ErrNotProc: the operator position of an application did not evaluate to
	// a primitive or function.
	ErrNotProc
	// ErrArity: a function or primitive received the wrong number of
	// arguments.
	ErrArity
	// ErrIO: a file could not be opened or read (load, run).
	ErrIO
)

// Error is the one structured error the reader and evaluator produce.
// Line and Col are 1-based and zero when the error has no source position.
type Error struct {
	Kind ErrKind
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.label(), e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.label(), e.Msg)
}

func (e *Error) label() string {
	switch e.Kind {
	case ErrSyntax, ErrIncomplete:
		return "SYNTAX ERROR"
	case ErrIO:
		return "IO ERROR"
	default:
		return "RUNTIME ERROR"
	}
}

// IsIncomplete reports whether err means the input ended mid-form. A REPL
// keeps prompting for continuation lines while this holds.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ErrIncomplete
}

// IsEndOfInput reports whether err is the reader's clean end-of-input signal.
func IsEndOfInput(err error) bool {
	return errors.Is(err, io.EOF)
}

// fail raises a runtime error through the evaluator's panic discipline. The
// exported entry points recover it back into an ordinary error return.
func fail(kind ErrKind, format string, args ...any) {
	panic(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// rescue converts a fail panic into an error return. Any other panic is not
// ours and is re-raised.
func rescue(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(*Error)
		if !ok {
			panic(r)
		}
		*err = e
	}
}

/* ===========================
   Caret-snippet rendering
   =========================== */

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src when err is a positioned *Error; any other error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("in <name>")
// in the header, for errors that came from a file.
func WrapErrorWithName(err error, srcName string, src string) error {
	var e *Error
	if !errors.As(err, &e) || e.Line < 1 {
		return err
	}
	return fmt.Errorf("%s", prettyErrorStringLabeled(src, e.label(), srcName, e.Line, e.Col, e.Msg))
}

// prettyErrorStringLabeled builds a Python-like snippet with a header and a
// caret. It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad > len(lineTxt) {
		caretPad = len(lineTxt)
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

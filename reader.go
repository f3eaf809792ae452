// reader.go: textual s-expressions to Values.
//
// The Reader is a pure pull parser: each Read call consumes exactly one value
// from the character source and returns it, or io.EOF when the input is
// cleanly exhausted, or a positioned *Error. It looks ahead at most one rune
// (io.RuneScanner's ReadRune/UnreadRune is the whole pushback contract).
//
// Token grammar, dispatched on the next unconsumed rune after skipping
// whitespace:
//
//	+ - 0..9   number: optional sign, maximal digit run, parsed with the
//	           generic base-0 integer convention (a leading 0 reads as
//	           octal). A sign not followed by a digit falls through to a
//	           symbol, so - alone reads as the symbol -.
//	"          string: raw copy up to the closing quote, no escapes
//	'          quote sugar: 'v reads as (quote v)
//	(          list, elements in input order
//	) ] [ { }  reserved delimiters: syntax error; the rest of the line is
//	           discarded so the next Read resumes after it
//	other      symbol: maximal run of runes outside ()[]{}'" \t\r\n, interned
//
// Input that ends inside a string, list or quote yields ErrIncomplete rather
// than ErrSyntax; interactive drivers probe for it to prompt a continuation
// line.
package lisp

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader reads Values from a rune source. Symbols are interned into the
// Runtime it was created with.
type Reader struct {
	rt *Runtime
	in io.RuneScanner

	// position of the next unconsumed rune, 1-based
	line, col int
	// position of the first rune of the token being read
	tokLine, tokCol int

	ioErr error // sticky non-EOF source failure
}

// NewReader returns a Reader over in. Wrap plain files in a bufio.Reader.
func NewReader(rt *Runtime, in io.RuneScanner) *Reader {
	return &Reader{rt: rt, in: in, line: 1, col: 1}
}

// NewStringReader returns a Reader over src.
func NewStringReader(rt *Runtime, src string) *Reader {
	return NewReader(rt, strings.NewReader(src))
}

// Read returns the next value from the input. io.EOF signals a clean end of
// input. After a syntax error the reader has skipped to the next line
// boundary, so calling Read again resumes there.
func (r *Reader) Read() (Value, error) {
	return r.readValue()
}

func (r *Reader) readValue() (Value, error) {
	r.skipSpace()
	r.tokLine, r.tokCol = r.line, r.col
	ch, ok := r.peek()
	switch {
	case !ok:
		return nil, r.eof()
	case isDigit(ch) || ch == '+' || ch == '-':
		return r.readNumber()
	case ch == '"':
		return r.readString()
	case ch == '\'':
		return r.readQuote()
	case ch == '(':
		return r.readList()
	case !isDelimiter(ch):
		return r.readSymbol("")
	default:
		// Stray ) or one of the reserved delimiters [ ] { }.
		r.next()
		err := r.syntaxErrorf("unexpected %q", ch)
		r.skipLine()
		return nil, err
	}
}

func (r *Reader) readNumber() (Value, error) {
	var tok strings.Builder
	if ch, ok := r.peek(); ok && (ch == '+' || ch == '-') {
		r.next()
		tok.WriteRune(ch)
	}
	if ch, ok := r.peek(); !ok || !isDigit(ch) {
		return r.readSymbol(tok.String())
	}
	for {
		ch, ok := r.peek()
		if !ok || !isDigit(ch) {
			break
		}
		r.next()
		tok.WriteRune(ch)
	}
	n, err := strconv.ParseInt(tok.String(), 0, 64)
	if err != nil {
		// Out of range saturates to the nearest representable value.
		// Anything else (a bad octal like 08) is malformed.
		if errors.Is(err, strconv.ErrRange) {
			return Number(n), nil
		}
		serr := r.syntaxErrorf("invalid number literal %q", tok.String())
		r.skipLine()
		return nil, serr
	}
	return Number(n), nil
}

func (r *Reader) readString() (Value, error) {
	r.next() // opening quote
	var tok strings.Builder
	for {
		ch, ok := r.peek()
		if !ok {
			return nil, r.incompletef(r.tokLine, r.tokCol, "unterminated string")
		}
		r.next()
		if ch == '"' {
			return String(tok.String()), nil
		}
		tok.WriteRune(ch)
	}
}

func (r *Reader) readQuote() (Value, error) {
	qLine, qCol := r.tokLine, r.tokCol
	r.next() // '
	v, err := r.readValue()
	if errors.Is(err, io.EOF) {
		return nil, r.incompletef(qLine, qCol, "expected a value after '")
	}
	if err != nil {
		return nil, err
	}
	return List(r.rt.symQuote, v), nil
}

func (r *Reader) readList() (Value, error) {
	openLine, openCol := r.tokLine, r.tokCol
	r.next() // (
	var list Value
	for {
		r.skipSpace()
		ch, ok := r.peek()
		if !ok {
			if r.ioErr != nil {
				return nil, r.eof()
			}
			return nil, r.incompletef(openLine, openCol, "unterminated list")
		}
		if ch == ')' {
			r.next()
			break
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		list = Cons(v, list)
	}
	// Elements were accumulated in reverse; rebuild in input order.
	var reversed Value
	for list != nil {
		cell := list.(*Cell)
		reversed = Cons(cell.Car, reversed)
		list = cell.Cdr
	}
	return reversed, nil
}

func (r *Reader) readSymbol(prefix string) (Value, error) {
	var tok strings.Builder
	tok.WriteString(prefix)
	for {
		ch, ok := r.peek()
		if !ok || isDelimiter(ch) {
			break
		}
		r.next()
		tok.WriteRune(ch)
	}
	if tok.Len() == 0 {
		return nil, r.eof()
	}
	return r.rt.Intern(tok.String()), nil
}

/* ===========================
   Rune source
   =========================== */

// peek returns the next rune without consuming it. ok is false at end of
// input or on a source failure (recorded in ioErr).
func (r *Reader) peek() (rune, bool) {
	ch, _, err := r.in.ReadRune()
	if err != nil {
		if err != io.EOF && r.ioErr == nil {
			r.ioErr = err
		}
		return 0, false
	}
	// One-rune pushback per the source contract; cannot fail after ReadRune.
	_ = r.in.UnreadRune()
	return ch, true
}

// next consumes one rune and advances the position counters.
func (r *Reader) next() (rune, bool) {
	ch, _, err := r.in.ReadRune()
	if err != nil {
		if err != io.EOF && r.ioErr == nil {
			r.ioErr = err
		}
		return 0, false
	}
	if ch == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return ch, true
}

func (r *Reader) skipSpace() {
	for {
		ch, ok := r.peek()
		if !ok || !isSpace(ch) {
			return
		}
		r.next()
	}
}

// skipLine discards input through the next line boundary; syntax-error
// recovery resumes reading there.
func (r *Reader) skipLine() {
	for {
		ch, ok := r.next()
		if !ok || ch == '\n' {
			return
		}
	}
}

func (r *Reader) eof() error {
	if r.ioErr != nil {
		return &Error{Kind: ErrIO, Line: r.line, Col: r.col, Msg: r.ioErr.Error()}
	}
	return io.EOF
}

func (r *Reader) syntaxErrorf(format string, args ...any) error {
	return &Error{Kind: ErrSyntax, Line: r.tokLine, Col: r.tokCol, Msg: fmt.Sprintf(format, args...)}
}

func (r *Reader) incompletef(line, col int, format string, args ...any) error {
	return &Error{Kind: ErrIncomplete, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// isDelimiter reports whether ch ends a symbol: the reserved delimiter set
// ()[]{}'" plus whitespace.
func isDelimiter(ch rune) bool {
	switch ch {
	case '(', ')', '[', ']', '{', '}', '\'', '"':
		return true
	}
	return isSpace(ch)
}

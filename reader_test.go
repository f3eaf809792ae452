package lisp

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func readOne(t *testing.T, src string) Value {
	t.Helper()
	rt := NewRuntime()
	v, err := NewStringReader(rt, src).Read()
	if err != nil {
		t.Fatalf("read %q: %v", src, err)
	}
	return v
}

func readAll(t *testing.T, src string) []Value {
	t.Helper()
	rt := NewRuntime()
	rd := NewStringReader(rt, src)
	var out []Value
	for {
		v, err := rd.Read()
		if IsEndOfInput(err) {
			return out
		}
		if err != nil {
			t.Fatalf("read %q: %v", src, err)
		}
		out = append(out, v)
	}
}

func readErr(t *testing.T, src string) error {
	t.Helper()
	rt := NewRuntime()
	rd := NewStringReader(rt, src)
	for {
		_, err := rd.Read()
		if err == nil {
			continue
		}
		if IsEndOfInput(err) {
			t.Fatalf("want error for %q, got end of input", src)
		}
		return err
	}
}

// --- tests -----------------------------------------------------------------

func Test_Reader_Numbers(t *testing.T) {
	wantNumber(t, readOne(t, "123"), 123)
	wantNumber(t, readOne(t, "-5"), -5)
	wantNumber(t, readOne(t, "+7"), 7)
	wantNumber(t, readOne(t, "0"), 0)

	// A leading zero selects octal.
	wantNumber(t, readOne(t, "010"), 8)
	wantNumber(t, readOne(t, "-010"), -8)
}

func Test_Reader_NumberSaturation(t *testing.T) {
	wantNumber(t, readOne(t, "99999999999999999999999"), math.MaxInt64)
	wantNumber(t, readOne(t, "-99999999999999999999999"), math.MinInt64)
	wantNumber(t, readOne(t, "9223372036854775807"), math.MaxInt64)
	wantNumber(t, readOne(t, "-9223372036854775808"), math.MinInt64)
}

func Test_Reader_BadOctalIsSyntaxError(t *testing.T) {
	wantErrKind(t, readErr(t, "08"), ErrSyntax)
}

func Test_Reader_SignsWithoutDigitsAreSymbols(t *testing.T) {
	wantSymbol(t, readOne(t, "-"), "-")
	wantSymbol(t, readOne(t, "+"), "+")
	wantSymbol(t, readOne(t, "-x"), "-x")
	wantSymbol(t, readOne(t, "+inf"), "+inf")
}

func Test_Reader_DigitRunEndsAtNonDigit(t *testing.T) {
	// The number token is the maximal digit run; what follows reads as a
	// separate symbol.
	vs := readAll(t, "123abc")
	if len(vs) != 2 {
		t.Fatalf("want 2 values, got %d", len(vs))
	}
	wantNumber(t, vs[0], 123)
	wantSymbol(t, vs[1], "abc")

	vs = readAll(t, "0x10")
	if len(vs) != 2 {
		t.Fatalf("want 2 values, got %d", len(vs))
	}
	wantNumber(t, vs[0], 0)
	wantSymbol(t, vs[1], "x10")
}

func Test_Reader_Strings(t *testing.T) {
	wantString(t, readOne(t, `""`), "")
	wantString(t, readOne(t, `"hi"`), "hi")
	wantString(t, readOne(t, `"a b (c)"`), "a b (c)")

	// No escape processing: a backslash is two characters of content.
	wantString(t, readOne(t, `"\n"`), `\n`)

	// A literal newline is ordinary string content.
	wantString(t, readOne(t, "\"a\nb\""), "a\nb")
}

func Test_Reader_Symbols(t *testing.T) {
	wantSymbol(t, readOne(t, "foo"), "foo")
	wantSymbol(t, readOne(t, "set!"), "set!")
	wantSymbol(t, readOne(t, "<="), "<=")
	wantSymbol(t, readOne(t, "a.b/c"), "a.b/c")
}

func Test_Reader_SymbolsAreInterned(t *testing.T) {
	rt := NewRuntime()
	rd := NewStringReader(rt, "foo foo bar")
	first, err := rd.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	second, err := rd.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	third, err := rd.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if first != second {
		t.Fatalf("same text must read to the identical symbol: %p vs %p", first, second)
	}
	if first == third {
		t.Fatalf("distinct text must not share a symbol")
	}
	if first != rt.Intern("foo") {
		t.Fatalf("reader symbol differs from Intern result")
	}
}

func Test_Reader_QuoteSugar(t *testing.T) {
	wantForm(t, readOne(t, "'foo"), "(quote foo)")
	wantForm(t, readOne(t, "'(1 2)"), "(quote (1 2))")
	wantForm(t, readOne(t, "''x"), "(quote (quote x))")
}

func Test_Reader_Lists(t *testing.T) {
	wantForm(t, readOne(t, "(1 2 3)"), "(1 2 3)")
	wantForm(t, readOne(t, "(+ 1 (* 2 3))"), "(+ 1 (* 2 3))")
	wantForm(t, readOne(t, "(1 (2 3) 4)"), "(1 (2 3) 4)")
	wantNil(t, readOne(t, "()"))
	wantNil(t, readOne(t, "( )"))
	wantNil(t, readOne(t, "(\n)"))
}

func Test_Reader_WhitespaceAndMultipleForms(t *testing.T) {
	vs := readAll(t, " \t 1\n(2 3)\n\"s\" ")
	if len(vs) != 3 {
		t.Fatalf("want 3 values, got %d", len(vs))
	}
	wantNumber(t, vs[0], 1)
	wantForm(t, vs[1], "(2 3)")
	wantString(t, vs[2], "s")
}

func Test_Reader_EndOfInput(t *testing.T) {
	rt := NewRuntime()
	for _, src := range []string{"", "   ", " \n\t "} {
		_, err := NewStringReader(rt, src).Read()
		if !IsEndOfInput(err) {
			t.Fatalf("want end of input for %q, got %v", src, err)
		}
	}

	rd := NewStringReader(rt, "1")
	if _, err := rd.Read(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := rd.Read(); !IsEndOfInput(err) {
		t.Fatalf("want end of input after last form, got %v", err)
	}
}

func Test_Reader_IncompleteInput(t *testing.T) {
	for _, src := range []string{"(1 2", "(1 (2 3)", `"abc`, "'", "(1 '", "((("} {
		err := readErr(t, src)
		if !IsIncomplete(err) {
			t.Fatalf("want incomplete for %q, got %v", src, err)
		}
	}
	if IsIncomplete(readErr(t, "]")) {
		t.Fatalf("a stray delimiter is not incomplete input")
	}
}

func Test_Reader_SyntaxErrors(t *testing.T) {
	for _, src := range []string{")", "]", "[", "{", "}"} {
		wantErrKind(t, readErr(t, src), ErrSyntax)
	}
	// Inside a list the error propagates out of the partial form.
	wantErrKind(t, readErr(t, "(1 ] 2)"), ErrSyntax)
}

func Test_Reader_SyntaxErrorPositions(t *testing.T) {
	var e *Error
	if !errors.As(readErr(t, "]"), &e) {
		t.Fatalf("want *Error")
	}
	if e.Line != 1 || e.Col != 1 {
		t.Fatalf("want 1:1, got %d:%d", e.Line, e.Col)
	}

	if !errors.As(readErr(t, "\n  ]"), &e) {
		t.Fatalf("want *Error")
	}
	if e.Line != 2 || e.Col != 3 {
		t.Fatalf("want 2:3, got %d:%d", e.Line, e.Col)
	}
}

func Test_Reader_IncompletePositionIsTokenStart(t *testing.T) {
	var e *Error
	if !errors.As(readErr(t, "(1 2"), &e) {
		t.Fatalf("want *Error")
	}
	if e.Line != 1 || e.Col != 1 {
		t.Fatalf("want 1:1 (the open paren), got %d:%d", e.Line, e.Col)
	}

	if !errors.As(readErr(t, "ok\n  \"abc"), &e) {
		t.Fatalf("want *Error")
	}
	if e.Line != 2 || e.Col != 3 {
		t.Fatalf("want 2:3 (the open quote), got %d:%d", e.Line, e.Col)
	}
}

func Test_Reader_RecoversOnNextLine(t *testing.T) {
	rt := NewRuntime()
	rd := NewStringReader(rt, "]\n99")
	_, err := rd.Read()
	wantErrKind(t, err, ErrSyntax)
	v, err := rd.Read()
	if err != nil {
		t.Fatalf("read after recovery: %v", err)
	}
	wantNumber(t, v, 99)

	// Recovery discards the remainder of the offending line.
	rd = NewStringReader(rt, "] 11 12\n13")
	_, err = rd.Read()
	wantErrKind(t, err, ErrSyntax)
	v, err = rd.Read()
	if err != nil {
		t.Fatalf("read after recovery: %v", err)
	}
	wantNumber(t, v, 13)

	rd = NewStringReader(rt, "08 junk\n5")
	_, err = rd.Read()
	wantErrKind(t, err, ErrSyntax)
	v, err = rd.Read()
	if err != nil {
		t.Fatalf("read after recovery: %v", err)
	}
	wantNumber(t, v, 5)
}

func Test_Reader_ErrorMessageNamesTheOffender(t *testing.T) {
	err := readErr(t, "]")
	if !strings.Contains(err.Error(), "]") {
		t.Fatalf("message should name the delimiter: %q", err.Error())
	}
	err = readErr(t, "08")
	if !strings.Contains(err.Error(), "08") {
		t.Fatalf("message should quote the token: %q", err.Error())
	}
}

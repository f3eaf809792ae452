// value.go — PUBLIC API: the value model.
//
// Every runtime datum is a Value, a closed tagged union with one concrete Go
// type per variant. Kind() discriminates without reflection:
//
//	*Cell   KCell    mutable pair; builds lists and environment frames
//	Number  KNumber  fixed-width signed integer
//	Bool    KBool    canonical True / False
//	String  KString  immutable text, no escape processing
//	*Symbol KSymbol  interned; identity comparison == text comparison
//	*Prim   KPrim    host procedure, opaque to the evaluator
//	*Func   KFunc    user procedure with captured environment
//
// The empty list (nil) is the absence of a cell: the nil Value interface, not
// a constructed instance. Taking car or cdr of it is a checked type-mismatch
// error, never a crash.
//
// *Cell is the only mutable variant. Everything else is immutable once
// constructed, and Symbols are canonical: Intern returns the same *Symbol for
// the same text, so pointer identity substitutes for text comparison
// everywhere outside the interner.
package lisp

// Kind identifies the variant held by a Value.
type Kind int

const (
	KNil Kind = iota
	KCell
	KNumber
	KBool
	KString
	KSymbol
	KPrim
	KFunc
)

// Value is one runtime datum. The nil interface value is the empty list.
type Value interface {
	Kind() Kind
}

// Cell is a mutable ordered pair. Lists are chains of Cells ending in nil;
// environment frames are (symbol . value) Cells.
type Cell struct {
	Car Value
	Cdr Value
}

func (*Cell) Kind() Kind { return KCell }

// Number is a fixed-width signed integer. Arithmetic wraps.
type Number int64

func (Number) Kind() Kind { return KNumber }

// Bool is a boolean. Only the canonical False is falsy; every other value,
// including 0, "" and the empty list, is truthy.
type Bool bool

func (Bool) Kind() Kind { return KBool }

var (
	True  = Bool(true)
	False = Bool(false)
)

// String is immutable text. The reader stores string literals verbatim, so a
// String never contains a double quote.
type String string

func (String) Kind() Kind { return KString }

// Symbol is an interned identifier. Two Symbols with the same name are the
// same pointer; construct them only through (*Runtime).Intern.
type Symbol struct {
	Name string
}

func (*Symbol) Kind() Kind { return KSymbol }

// PrimFunc is a host procedure: it receives the already-evaluated argument
// list (a cons list, nil for zero arguments) and returns one result. It
// validates its own arity and argument types, raising through fail.
type PrimFunc func(rt *Runtime, args Value) Value

// Prim wraps a host procedure with the name it was registered under.
type Prim struct {
	Name string
	Fn   PrimFunc
}

func (*Prim) Kind() Kind { return KPrim }

// Func is a user-defined procedure: a parameter list of Symbols, a body list
// of expressions, and the environment captured when the fn form was
// evaluated.
type Func struct {
	Params Value
	Body   Value
	Env    Value
}

func (*Func) Kind() Kind { return KFunc }

// Cons returns a fresh pair.
func Cons(car, cdr Value) *Cell { return &Cell{Car: car, Cdr: cdr} }

// List builds a proper list of the given items.
func List(items ...Value) Value {
	var list Value
	for i := len(items) - 1; i >= 0; i-- {
		list = Cons(items[i], list)
	}
	return list
}

// KindOf reports the variant of v, mapping the empty list to KNil.
func KindOf(v Value) Kind {
	if v == nil {
		return KNil
	}
	return v.Kind()
}

/* ===========================
   Checked accessors
   =========================== */

// car returns the head of a pair. Applied to anything else, including the
// empty list, it raises a type-mismatch error.
func car(v Value) Value {
	c, ok := v.(*Cell)
	if !ok {
		fail(ErrType, "car: not a cons cell: %s", FormatValue(v))
	}
	return c.Car
}

// cdr returns the tail of a pair, with the same guard as car.
func cdr(v Value) Value {
	c, ok := v.(*Cell)
	if !ok {
		fail(ErrType, "cdr: not a cons cell: %s", FormatValue(v))
	}
	return c.Cdr
}

func setCar(v, val Value) *Cell {
	c, ok := v.(*Cell)
	if !ok {
		fail(ErrType, "set-car!: not a cons cell: %s", FormatValue(v))
	}
	c.Car = val
	return c
}

func setCdr(v, val Value) *Cell {
	c, ok := v.(*Cell)
	if !ok {
		fail(ErrType, "set-cdr!: not a cons cell: %s", FormatValue(v))
	}
	c.Cdr = val
	return c
}

func asNumber(v Value, context string) Number {
	n, ok := v.(Number)
	if !ok {
		fail(ErrType, "%s: not a number: %s", context, FormatValue(v))
	}
	return n
}

func asString(v Value, context string) String {
	s, ok := v.(String)
	if !ok {
		fail(ErrType, "%s: not a string: %s", context, FormatValue(v))
	}
	return s
}

func asSymbol(v Value, context string) *Symbol {
	s, ok := v.(*Symbol)
	if !ok {
		fail(ErrType, "%s: not a symbol: %s", context, FormatValue(v))
	}
	return s
}

// listLen reports the length of a proper list. ok is false when v has a
// non-nil, non-cell tail.
func listLen(v Value) (int, bool) {
	n := 0
	for v != nil {
		c, ok := v.(*Cell)
		if !ok {
			return n, false
		}
		n++
		v = c.Cdr
	}
	return n, true
}

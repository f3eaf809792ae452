// env.go: lexical environments as association lists.
//
// An environment is ordinary cons structure: a list of (symbol . value)
// pairs, innermost binding first, nil for the empty environment. Extending
// never mutates the existing chain, so a closure that captured the old list
// head is unaffected by later extensions — but the pairs themselves are
// shared, which is exactly what lets set! write through a binding that
// existed at capture time.
package lisp

// Extend returns env with one new (sym . val) frame prepended. env itself is
// left untouched.
func Extend(env Value, sym *Symbol, val Value) Value {
	return Cons(Cons(sym, val), env)
}

// Lookup scans the frames from innermost to outermost for a binding whose
// key is identical to sym (pointer identity; symbols are interned). It
// returns the binding pair itself so callers can mutate the value slot in
// place. The boolean is false when sym is unbound.
func Lookup(env Value, sym *Symbol) (*Cell, bool) {
	for {
		frame, ok := env.(*Cell)
		if !ok {
			return nil, false
		}
		if pair, ok := frame.Car.(*Cell); ok && pair.Car == sym {
			return pair, true
		}
		env = frame.Cdr
	}
}

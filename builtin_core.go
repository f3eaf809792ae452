// builtin_core.go — arithmetic, comparison and identity primitives.
//
// A primitive receives its arguments as an already-evaluated cons list and
// raises through fail; the evaluator's trampoline turns that into an error
// at the API boundary. Each primitive validates its own arity and types.
package lisp

func registerCoreBuiltins(rt *Runtime) {
	rt.Register("+", func(rt *Runtime, args Value) Value {
		acc := Number(0)
		for _, v := range expectArgs("+", args, 0, -1) {
			acc += asNumber(v, "+")
		}
		return acc
	})

	rt.Register("-", func(rt *Runtime, args Value) Value {
		vals := expectArgs("-", args, 1, -1)
		acc := asNumber(vals[0], "-")
		if len(vals) == 1 {
			return -acc
		}
		for _, v := range vals[1:] {
			acc -= asNumber(v, "-")
		}
		return acc
	})

	rt.Register("*", func(rt *Runtime, args Value) Value {
		acc := Number(1)
		for _, v := range expectArgs("*", args, 0, -1) {
			acc *= asNumber(v, "*")
		}
		return acc
	})

	rt.Register("/", func(rt *Runtime, args Value) Value {
		vals := expectArgs("/", args, 1, -1)
		acc := asNumber(vals[0], "/")
		rest := vals[1:]
		if len(vals) == 1 {
			rest = vals
			acc = 1
		}
		for _, v := range rest {
			d := asNumber(v, "/")
			if d == 0 {
				fail(ErrType, "/: division by zero")
			}
			if d == -1 {
				// Avoids the host overflow trap on MinInt64 / -1; negation
				// wraps like the rest of the arithmetic.
				acc = -acc
				continue
			}
			acc /= d
		}
		return acc
	})

	rt.Register("=", cmpPrim("=", func(a, b Number) bool { return a == b }))
	rt.Register("<", cmpPrim("<", func(a, b Number) bool { return a < b }))
	rt.Register(">", cmpPrim(">", func(a, b Number) bool { return a > b }))
	rt.Register("<=", cmpPrim("<=", func(a, b Number) bool { return a <= b }))
	rt.Register(">=", cmpPrim(">=", func(a, b Number) bool { return a >= b }))

	// eq? is identity: pointer identity for cells, symbols, primitives and
	// functions, value identity for numbers, booleans and strings.
	rt.Register("eq?", func(rt *Runtime, args Value) Value {
		vals := expectArgs("eq?", args, 2, 2)
		if vals[0] == vals[1] {
			return True
		}
		return False
	})

	rt.Register("not", func(rt *Runtime, args Value) Value {
		vals := expectArgs("not", args, 1, 1)
		if vals[0] == False {
			return True
		}
		return False
	})
}

// cmpPrim builds a chained numeric comparison: every adjacent pair of
// arguments must satisfy ok.
func cmpPrim(name string, ok func(a, b Number) bool) PrimFunc {
	return func(rt *Runtime, args Value) Value {
		vals := expectArgs(name, args, 2, -1)
		prev := asNumber(vals[0], name)
		for _, v := range vals[1:] {
			cur := asNumber(v, name)
			if !ok(prev, cur) {
				return False
			}
			prev = cur
		}
		return True
	}
}

// expectArgs collects an argument list into a slice, failing unless the
// count lies within [min, max]. max < 0 means no upper bound.
func expectArgs(name string, args Value, min, max int) []Value {
	var vals []Value
	for args != nil {
		c, ok := args.(*Cell)
		if !ok {
			fail(ErrType, "%s: malformed argument list", name)
		}
		vals = append(vals, c.Car)
		args = c.Cdr
	}
	n := len(vals)
	switch {
	case max >= 0 && min == max && n != min:
		fail(ErrArity, "%s: want %d argument(s), got %d", name, min, n)
	case n < min:
		fail(ErrArity, "%s: want at least %d argument(s), got %d", name, min, n)
	case max >= 0 && n > max:
		fail(ErrArity, "%s: want at most %d argument(s), got %d", name, max, n)
	}
	return vals
}

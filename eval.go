// eval.go — the evaluator: special forms, application, and the panic
// trampoline that turns internal fail signals into error returns.
//
// eval threads the environment by pointer so def extends the binding the
// caller handed in: at top level that is rt.Globals, inside a function body
// it is the call's local chain, which is how a def mid-body becomes visible
// to the expressions after it.
//
// Special forms dispatch on symbol identity of the list head, before any
// lookup, so rebinding the name quote does not change what (quote x) means.
package lisp

// Eval evaluates expr in the global environment. All evaluation errors are
// returned, never panicked; a nil error with a nil Value means the expression
// evaluated to the empty list.
func (rt *Runtime) Eval(expr Value) (v Value, err error) {
	defer rescue(&err)
	return rt.eval(expr, &rt.Globals), nil
}

func (rt *Runtime) eval(expr Value, env *Value) Value {
	switch v := expr.(type) {
	case *Cell:
		switch v.Car {
		case rt.symQuote:
			return car(cdr(v))
		case rt.symFn:
			return &Func{Params: car(cdr(v)), Body: cdr(cdr(v)), Env: *env}
		case rt.symDef:
			name := asSymbol(car(cdr(v)), "def")
			val := rt.eval(car(cdr(cdr(v))), env)
			*env = Extend(*env, name, val)
			return val
		case rt.symSet:
			name := asSymbol(car(cdr(v)), "set!")
			pair, bound := Lookup(*env, name)
			val := rt.eval(car(cdr(cdr(v))), env)
			if bound {
				pair.Cdr = val
			} else {
				// set! on an unbound name binds it at global scope.
				rt.AddGlobal(name, val)
			}
			return val
		case rt.symIf:
			cond := rt.eval(car(cdr(v)), env)
			if cond != False {
				return rt.eval(car(cdr(cdr(v))), env)
			}
			return rt.eval(car(cdr(cdr(cdr(v)))), env)
		default:
			fn := rt.eval(v.Car, env)
			args := rt.evalArgs(v.Cdr, env)
			return rt.apply(fn, args)
		}
	case *Symbol:
		pair, bound := Lookup(*env, v)
		if !bound {
			fail(ErrUnbound, "unbound symbol: %s", v.Name)
		}
		return pair.Cdr
	default:
		// Numbers, booleans, strings, primitives, functions and the empty
		// list evaluate to themselves.
		return expr
	}
}

// evalArgs evaluates an argument list strictly left to right.
func (rt *Runtime) evalArgs(list Value, env *Value) Value {
	if list == nil {
		return nil
	}
	head := rt.eval(car(list), env)
	return Cons(head, rt.evalArgs(cdr(list), env))
}

func (rt *Runtime) apply(fn Value, args Value) Value {
	switch f := fn.(type) {
	case *Prim:
		return f.Fn(rt, args)
	case *Func:
		env := bindArgs(f.Env, f.Params, args)
		return rt.evalBody(f.Body, env)
	default:
		fail(ErrNotProc, "not a procedure: %s", FormatValue(fn))
		return nil
	}
}

// bindArgs extends the closure environment with one frame per parameter.
// The counts must match exactly; there is no truncation or padding.
func bindArgs(env, params, args Value) Value {
	want, ok := listLen(params)
	if !ok {
		fail(ErrType, "fn: malformed parameter list")
	}
	got, _ := listLen(args)
	if want != got {
		fail(ErrArity, "arity mismatch: want %d argument(s), got %d", want, got)
	}
	for params != nil {
		p := params.(*Cell)
		a := args.(*Cell)
		env = Extend(env, asSymbol(p.Car, "fn: parameter"), a.Car)
		params, args = p.Cdr, a.Cdr
	}
	return env
}

// evalBody evaluates the body expressions in order and returns the value of
// the last one; an empty body yields nil. Defs inside the body extend the
// local chain for the expressions that follow.
func (rt *Runtime) evalBody(body Value, env Value) Value {
	if body == nil {
		return nil
	}
	for {
		cell, ok := body.(*Cell)
		if !ok {
			fail(ErrType, "fn: malformed body")
		}
		if cell.Cdr == nil {
			return rt.eval(cell.Car, &env)
		}
		rt.eval(cell.Car, &env)
		body = cell.Cdr
	}
}

// builtin_list.go — pair construction, the checked accessors, and in-place
// mutation. car and cdr reject anything that is not a cons cell, the empty
// list included.
package lisp

func registerListBuiltins(rt *Runtime) {
	rt.Register("cons", func(rt *Runtime, args Value) Value {
		vals := expectArgs("cons", args, 2, 2)
		return Cons(vals[0], vals[1])
	})

	rt.Register("car", func(rt *Runtime, args Value) Value {
		vals := expectArgs("car", args, 1, 1)
		return car(vals[0])
	})

	rt.Register("cdr", func(rt *Runtime, args Value) Value {
		vals := expectArgs("cdr", args, 1, 1)
		return cdr(vals[0])
	})

	rt.Register("set-car!", func(rt *Runtime, args Value) Value {
		vals := expectArgs("set-car!", args, 2, 2)
		return setCar(vals[0], vals[1])
	})

	rt.Register("set-cdr!", func(rt *Runtime, args Value) Value {
		vals := expectArgs("set-cdr!", args, 2, 2)
		return setCdr(vals[0], vals[1])
	})

	rt.Register("list", func(rt *Runtime, args Value) Value {
		return List(expectArgs("list", args, 0, -1)...)
	})
}

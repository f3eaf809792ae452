// builtin_io.go — output and file-loading primitives.
package lisp

import (
	"errors"
	"fmt"
)

func registerIOBuiltins(rt *Runtime) {
	// print renders each argument canonically, space separated.
	rt.Register("print", func(rt *Runtime, args Value) Value {
		printVals(rt, expectArgs("print", args, 0, -1))
		return nil
	})

	rt.Register("println", func(rt *Runtime, args Value) Value {
		printVals(rt, expectArgs("println", args, 0, -1))
		fmt.Fprintln(rt.Stdout)
		return nil
	})

	// load reads and evaluates every form of the named file in the global
	// environment.
	rt.Register("load", func(rt *Runtime, args Value) Value {
		vals := expectArgs("load", args, 1, 1)
		path := asString(vals[0], "load")
		if err := rt.LoadFile(string(path)); err != nil {
			var e *Error
			if errors.As(err, &e) {
				panic(e)
			}
			fail(ErrIO, "load: %v", err)
		}
		return nil
	})
}

func printVals(rt *Runtime, vals []Value) {
	for i, v := range vals {
		if i > 0 {
			fmt.Fprint(rt.Stdout, " ")
		}
		fmt.Fprint(rt.Stdout, FormatValue(v))
	}
}

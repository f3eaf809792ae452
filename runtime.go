// runtime.go
//
// The Runtime owns all process-wide state: the symbol interning table and
// the Globals environment. Creating one interns the special-form symbols and
// registers the built-in primitives; nothing lives at package level, so
// independent Runtimes do not share symbols or bindings.
//
// A *Runtime is not safe for concurrent use. Evaluation is single-threaded;
// interning is check-then-insert and environment frames are shared mutable
// structure. Callers that want parallelism create one Runtime per goroutine.
package lisp

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Version is the release version reported by the driver.
const Version = "0.2.0"

// Runtime carries the interning table, the global environment and the output
// writer the io primitives print to.
type Runtime struct {
	symbols map[string]*Symbol

	// Globals is the outermost environment: an association list of
	// (symbol . value) frames. def at top level and set! on an unbound
	// symbol extend it.
	Globals Value

	// Stdout receives the output of print and println. Defaults to
	// os.Stdout.
	Stdout io.Writer

	symQuote *Symbol
	symIf    *Symbol
	symDef   *Symbol
	symSet   *Symbol
	symFn    *Symbol
}

// NewRuntime returns a fully-initialized runtime: special forms interned,
// standard primitives and the true/false globals bound.
func NewRuntime() *Runtime {
	rt := &Runtime{
		symbols: make(map[string]*Symbol),
		Stdout:  os.Stdout,
	}
	rt.symQuote = rt.Intern("quote")
	rt.symIf = rt.Intern("if")
	rt.symDef = rt.Intern("def")
	rt.symSet = rt.Intern("set!")
	rt.symFn = rt.Intern("fn")

	rt.AddGlobal(rt.Intern("true"), True)
	rt.AddGlobal(rt.Intern("false"), False)
	registerCoreBuiltins(rt)
	registerListBuiltins(rt)
	registerIOBuiltins(rt)
	return rt
}

// Intern returns the canonical Symbol for name, creating it on first use.
// Equal names always yield the identical pointer.
func (rt *Runtime) Intern(name string) *Symbol {
	if s, ok := rt.symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	rt.symbols[name] = s
	return s
}

// AddGlobal binds sym to val in the global environment and returns val.
func (rt *Runtime) AddGlobal(sym *Symbol, val Value) Value {
	rt.Globals = Extend(rt.Globals, sym, val)
	return val
}

// Register binds a named host primitive in the global environment.
func (rt *Runtime) Register(name string, fn PrimFunc) {
	rt.AddGlobal(rt.Intern(name), &Prim{Name: name, Fn: fn})
}

// EvalString reads every form in src and evaluates each in the global
// environment, returning the value of the last form (nil when src holds
// none). The first read or evaluation error stops the run.
func (rt *Runtime) EvalString(src string) (Value, error) {
	r := NewStringReader(rt, src)
	var last Value
	for {
		form, err := r.Read()
		if errors.Is(err, io.EOF) {
			return last, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := rt.Eval(form)
		if err != nil {
			return nil, err
		}
		last = v
	}
}

// LoadFile reads and evaluates every form of the named file in the global
// environment. The load primitive and the run subcommand are built on it.
func (rt *Runtime) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &Error{Kind: ErrIO, Msg: err.Error()}
	}
	defer f.Close()

	r := NewReader(rt, bufio.NewReader(f))
	for {
		form, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := rt.Eval(form); err != nil {
			return err
		}
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/mikedlowis-prototypes/lisp"
)

const (
	appName     = "lisp"
	historyFile = ".lisp_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var (
	banner   = fmt.Sprintf("lisp %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", lisp.Version)
	helpText = `
REPL commands:
  :help    Show this help
  :quit    Exit the REPL
`
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "eval":
		os.Exit(cmdEval(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "version":
		fmt.Println(lisp.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`lisp %s

Usage:
  %s run <file.lsp> [file ...]    Evaluate file(s) in one runtime
  %s repl                         Start the REPL
  %s eval <expr>                  Evaluate an expression, print each result
  %s fmt <file.lsp> [file ...]    Reprint file(s) in canonical form
  %s version                      Print the version

`, lisp.Version, appName, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.lsp> [file ...]\n", appName)
		return 2
	}

	rt := lisp.NewRuntime()
	for _, file := range args {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
			return 1
		}
		if _, err := rt.EvalString(string(src)); err != nil {
			fmt.Fprintln(os.Stderr, red(lisp.WrapErrorWithName(err, file, string(src)).Error()))
			return 1
		}
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	rt := lisp.NewRuntime()

	for {
		code, ok := readByParseProbe(rt, ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			case ":help":
				fmt.Print(helpText)
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		evalAndPrint(rt, code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// evalAndPrint reads every form in code, evaluates it and prints the result.
// Evaluation errors are reported and the remaining forms still run; a read
// error abandons the rest of the line.
func evalAndPrint(rt *lisp.Runtime, code string) {
	r := lisp.NewStringReader(rt, code)
	for {
		form, err := r.Read()
		if lisp.IsEndOfInput(err) {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(lisp.WrapErrorWithSource(err, code).Error()))
			return
		}
		v, err := rt.Eval(form)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(lisp.FormatValue(v)))
	}
}

// readByParseProbe accumulates prompt lines until the whole buffer reads
// cleanly or fails with something other than incomplete input. The caller
// re-reads the returned source, so any error is reported exactly once.
func readByParseProbe(rt *lisp.Runtime, ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		perr := probeRead(rt, src)
		if perr == nil {
			return src, true
		}
		if lisp.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// probeRead reads src to the end without evaluating anything, reporting the
// first read error.
func probeRead(rt *lisp.Runtime, src string) error {
	r := lisp.NewStringReader(rt, src)
	for {
		_, err := r.Read()
		if lisp.IsEndOfInput(err) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// -----------------------------------------------------------------------------
// eval
// -----------------------------------------------------------------------------

func cmdEval(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s eval <expr>\n", appName)
		return 2
	}

	rt := lisp.NewRuntime()
	src := args[0]
	r := lisp.NewStringReader(rt, src)
	for {
		form, err := r.Read()
		if lisp.IsEndOfInput(err) {
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(lisp.WrapErrorWithSource(err, src).Error()))
			return 1
		}
		v, err := rt.Eval(form)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
		fmt.Println(lisp.FormatValue(v))
	}
}

// -----------------------------------------------------------------------------
// fmt
// -----------------------------------------------------------------------------

func cmdFmt(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s fmt <file.lsp> [file ...]\n", appName)
		return 2
	}

	rt := lisp.NewRuntime()
	for _, file := range args {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
			return 1
		}
		r := lisp.NewStringReader(rt, string(src))
		for {
			form, rerr := r.Read()
			if lisp.IsEndOfInput(rerr) {
				break
			}
			if rerr != nil {
				fmt.Fprintln(os.Stderr, red(lisp.WrapErrorWithName(rerr, file, string(src)).Error()))
				return 1
			}
			fmt.Println(lisp.FormatValue(form))
		}
	}
	return 0
}

// printer.go: canonical textual rendering of Values.
//
// Numbers print as decimal, booleans as true/false, strings quoted with
// their text verbatim (the reader does no escape processing, so neither does
// the printer), symbols as their name, the empty list as nil. Lists render
// structurally, with a dotted tail for pairs that do not end in nil.
// Primitives and functions are opaque tokens.
//
// set-cdr! can tie the value graph into cycles, so rendering is capped by
// depth and element count instead of trusting the structure to terminate.
package lisp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	maxPrintDepth = 64
	maxPrintItems = 1024
)

// FormatValue renders v in the canonical display form.
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v, 0)
	return b.String()
}

// Fprint writes the canonical rendering of v to w.
func Fprint(w io.Writer, v Value) error {
	_, err := io.WriteString(w, FormatValue(v))
	return err
}

func writeValue(b *strings.Builder, v Value, depth int) {
	if v == nil {
		b.WriteString("nil")
		return
	}
	switch x := v.(type) {
	case Number:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case Bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case String:
		b.WriteByte('"')
		b.WriteString(string(x))
		b.WriteByte('"')
	case *Symbol:
		b.WriteString(x.Name)
	case *Prim:
		fmt.Fprintf(b, "<prim:%s>", x.Name)
	case *Func:
		b.WriteString("<fn>")
	case *Cell:
		writeList(b, x, depth)
	default:
		fmt.Fprintf(b, "<unknown:%T>", v)
	}
}

func writeList(b *strings.Builder, c *Cell, depth int) {
	if depth >= maxPrintDepth {
		b.WriteString("(...)")
		return
	}
	b.WriteByte('(')
	for n := 0; ; n++ {
		if n >= maxPrintItems {
			b.WriteString("...")
			break
		}
		writeValue(b, c.Car, depth+1)
		next, ok := c.Cdr.(*Cell)
		if ok {
			b.WriteByte(' ')
			c = next
			continue
		}
		if c.Cdr != nil {
			b.WriteString(" . ")
			writeValue(b, c.Cdr, depth+1)
		}
		break
	}
	b.WriteByte(')')
}

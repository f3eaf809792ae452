package lisp

import (
	"testing"
)

func Test_List_Cons(t *testing.T) {
	wantForm(t, evalSrc(t, "(cons 1 2)"), "(1 . 2)")
	wantForm(t, evalSrc(t, "(cons 1 '())"), "(1)")
	wantForm(t, evalSrc(t, "(cons 1 (cons 2 '()))"), "(1 2)")
	wantErrKind(t, evalErr(t, "(cons 1)"), ErrArity)
	wantErrKind(t, evalErr(t, "(cons 1 2 3)"), ErrArity)
}

func Test_List_CarCdr(t *testing.T) {
	wantNumber(t, evalSrc(t, "(car (cons 1 2))"), 1)
	wantNumber(t, evalSrc(t, "(cdr (cons 1 2))"), 2)
	wantNumber(t, evalSrc(t, "(car '(1 2 3))"), 1)
	wantForm(t, evalSrc(t, "(cdr '(1 2 3))"), "(2 3)")
	wantNil(t, evalSrc(t, "(cdr '(1))"))
}

func Test_List_CarCdrRejectNonCells(t *testing.T) {
	// The empty list is not a pair; taking it apart is an error.
	wantErrKind(t, evalErr(t, "(car '())"), ErrType)
	wantErrKind(t, evalErr(t, "(cdr '())"), ErrType)
	wantErrKind(t, evalErr(t, "(car 5)"), ErrType)
	wantErrKind(t, evalErr(t, `(cdr "s")`), ErrType)
}

func Test_List_SetCar(t *testing.T) {
	rt := NewRuntime()
	mustEval(t, rt, "(def c (cons 1 2))")
	wantForm(t, mustEval(t, rt, "(set-car! c 9)"), "(9 . 2)")
	wantForm(t, mustEval(t, rt, "c"), "(9 . 2)")
	wantErrKind(t, evalErr(t, "(set-car! 5 1)"), ErrType)
}

func Test_List_SetCdr(t *testing.T) {
	rt := NewRuntime()
	mustEval(t, rt, "(def c (cons 1 2))")
	wantForm(t, mustEval(t, rt, "(set-cdr! c '(7 8))"), "(1 7 8)")
	wantForm(t, mustEval(t, rt, "c"), "(1 7 8)")
	wantErrKind(t, evalErr(t, "(set-cdr! '() 1)"), ErrType)
}

func Test_List_List(t *testing.T) {
	wantNil(t, evalSrc(t, "(list)"))
	wantForm(t, evalSrc(t, "(list 1 2 3)"), "(1 2 3)")
	wantForm(t, evalSrc(t, `(list 1 "a" 'b '(2))`), `(1 "a" b (2))`)

	// Arguments are evaluated, unlike quote.
	wantForm(t, evalSrc(t, "(list (+ 1 2) (* 2 2))"), "(3 4)")
}

func Test_List_SharedStructure(t *testing.T) {
	rt := NewRuntime()
	mustEval(t, rt, "(def tail '(2 3))")
	mustEval(t, rt, "(def a (cons 1 tail))")
	mustEval(t, rt, "(def b (cons 0 tail))")
	mustEval(t, rt, "(set-car! tail 9)")
	wantForm(t, mustEval(t, rt, "a"), "(1 9 3)")
	wantForm(t, mustEval(t, rt, "b"), "(0 9 3)")
}

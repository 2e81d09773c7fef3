package formula

import "sort"

// Ops supplies the arithmetic a numeric type needs to evaluate a formula: a
// narrowing conversion from the parser's complex literals, the five binary
// operators, and the thirteen named functions. Every field must be non-nil.
// Ready-made instantiations live in ops.go.
type Ops[T any] struct {
	// FromComplex narrows a parsed literal to T. It also produces the
	// default value each variable is seeded with, FromComplex(0).
	FromComplex func(complex128) T

	Add, Sub, Mul, Div, Pow func(T, T) T

	Sin, Cos, Tan    func(T) T
	Sinh, Cosh, Tanh func(T) T
	Exp, Log, Abs    func(T) T
	Pos, Ang, Re, Im func(T) T
}

// Evaluator is a formula compiled for one numeric type: a closure tree plus
// a variable table seeded from the formula's used-variable set. Set mutates
// the table and changes the results of future Eval calls without
// recompiling. The evaluator keeps no reference to the parser it was
// compiled from. An Evaluator is not safe for concurrent use.
type Evaluator[T any] struct {
	root func() T
	vars map[int]*T
}

// Compile builds an evaluator for the parser's current formula. Every
// variable the formula references starts at ops.FromComplex(0). Compiling
// an empty parser fails with ErrNoInput.
func Compile[T any](p *Parser, ops Ops[T]) (*Evaluator[T], error) {
	if p.root == nil {
		return nil, errAt(ErrNoInput, 0)
	}
	e := &Evaluator[T]{vars: make(map[int]*T, len(p.used))}
	for i := range p.used {
		v := ops.FromComplex(0)
		e.vars[i] = &v
	}
	root, err := compileNode(p.root, ops, e.vars)
	if err != nil {
		return nil, err
	}
	e.root = root
	return e, nil
}

// compileNode converts one syntax tree node into an evaluation closure of
// the same shape. Variable leaves hold a durable pointer into the
// evaluator's table slot, never a copy of the value.
func compileNode[T any](n *node, ops Ops[T], vars map[int]*T) (func() T, error) {
	switch n.kind {
	case nodeConstant:
		v := ops.FromComplex(n.value)
		return func() T { return v }, nil
	case nodeVariable:
		slot, ok := vars[n.index]
		if !ok {
			return nil, errAt(ErrInvalidVariableIndex, 0)
		}
		return func() T { return *slot }, nil
	case nodeFunc:
		arg, err := compileNode(n.left, ops, vars)
		if err != nil {
			return nil, err
		}
		fn, err := ops.unary(n.fn)
		if err != nil {
			return nil, err
		}
		return func() T { return fn(arg()) }, nil
	case nodeOperator:
		lhs, err := compileNode(n.left, ops, vars)
		if err != nil {
			return nil, err
		}
		rhs, err := compileNode(n.right, ops, vars)
		if err != nil {
			return nil, err
		}
		fn, err := ops.binary(n.op)
		if err != nil {
			return nil, err
		}
		return func() T { return fn(lhs(), rhs()) }, nil
	}
	return nil, errAt(ErrUnknown, 0)
}

func (o Ops[T]) unary(fn funcName) (func(T) T, error) {
	var f func(T) T
	switch fn {
	case fnSin:
		f = o.Sin
	case fnCos:
		f = o.Cos
	case fnTan:
		f = o.Tan
	case fnSinh:
		f = o.Sinh
	case fnCosh:
		f = o.Cosh
	case fnTanh:
		f = o.Tanh
	case fnExp:
		f = o.Exp
	case fnLog:
		f = o.Log
	case fnAbs:
		f = o.Abs
	case fnPos:
		f = o.Pos
	case fnAng:
		f = o.Ang
	case fnRe:
		f = o.Re
	case fnIm:
		f = o.Im
	}
	if f == nil {
		return nil, errAt(ErrUnknown, 0)
	}
	return f, nil
}

func (o Ops[T]) binary(op opName) (func(T, T) T, error) {
	var f func(T, T) T
	switch op {
	case opAdd:
		f = o.Add
	case opSub:
		f = o.Sub
	case opMul:
		f = o.Mul
	case opDiv:
		f = o.Div
	case opPow:
		f = o.Pow
	}
	if f == nil {
		return nil, errAt(ErrUnknown, 0)
	}
	return f, nil
}

// Eval evaluates the compiled formula over the current variable table. It
// never mutates the tree; calling it twice with unchanged variables yields
// identical results.
func (e *Evaluator[T]) Eval() T {
	return e.root()
}

// Set assigns a variable and reports whether the formula references the
// index; assignments to unreferenced indices are dropped.
func (e *Evaluator[T]) Set(index int, v T) bool {
	slot, ok := e.vars[index]
	if !ok {
		return false
	}
	*slot = v
	return true
}

// SetAll assigns every referenced variable the same value.
func (e *Evaluator[T]) SetAll(v T) {
	for _, slot := range e.vars {
		*slot = v
	}
}

// Var returns the current value of a variable and whether the formula
// references it.
func (e *Evaluator[T]) Var(index int) (T, bool) {
	slot, ok := e.vars[index]
	if !ok {
		var zero T
		return zero, false
	}
	return *slot, true
}

// Vars returns the sorted variable indices seeded in the table.
func (e *Evaluator[T]) Vars() []int {
	v := make([]int, 0, len(e.vars))
	for i := range e.vars {
		v = append(v, i)
	}
	sort.Ints(v)
	return v
}

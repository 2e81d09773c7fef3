package formula

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of a formula. A tree is built
// once by the parser and never mutated afterward; each child pointer has
// exactly one owner.
type node struct {
	kind nodeKind

	// index is the variable index when kind is nodeVariable. -1 is the
	// distinguished constant c, 0 is bare z, and positive indices are the
	// numbered variables z1, z2, ….
	index int
	// value is the literal value when kind is nodeConstant.
	value complex128
	// fn selects one of the thirteen functions when kind is nodeFunc.
	fn funcName
	// op and prec are the operator selector and its precedence level when
	// kind is nodeOperator. Operators at prec 0 bind loosest.
	op   opName
	prec int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota
	nodeVariable
	nodeConstant
	nodeFunc // one operand in left
	nodeOperator
)

// funcName selects a unary function.
type funcName int8

const (
	fnSin funcName = iota
	fnCos
	fnTan
	fnSinh
	fnCosh
	fnTanh
	fnExp
	fnLog
	fnAbs
	fnPos
	fnAng
	fnRe
	fnIm
)

var funcNames = [...]string{
	fnSin: "sin", fnCos: "cos", fnTan: "tan",
	fnSinh: "sinh", fnCosh: "cosh", fnTanh: "tanh",
	fnExp: "exp", fnLog: "log", fnAbs: "abs",
	fnPos: "pos", fnAng: "ang", fnRe: "re", fnIm: "im",
}

// funcByName resolves a function name to its selector.
func funcByName(name string) (funcName, bool) {
	for i, s := range funcNames {
		if s == name {
			return funcName(i), true
		}
	}
	return 0, false
}

// opName selects a binary operator.
type opName int8

const (
	opAdd opName = iota
	opSub
	opMul
	opDiv
	opPow
)

var opNames = [...]string{
	opAdd: "add", opSub: "sub", opMul: "mul", opDiv: "div", opPow: "pow",
}

// resolved reports whether a token in the reducer's working sequence can
// serve as an operand: any leaf, or an operator that has already adopted
// both of its children. A childless operator is still pending and is not a
// value.
func (n *node) resolved() bool {
	if n.kind == nodeOperator {
		return n.left != nil && n.right != nil
	}
	return true
}

// String renders the tree in prefix form, e.g. add(mul(z,z),c). The form is
// for diagnostics and tests; it is not guaranteed to re-parse.
func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeVariable:
		if n.index < 0 {
			b.WriteByte('c')
			return
		}
		b.WriteByte('z')
		if n.index > 0 {
			b.WriteString(strconv.Itoa(n.index))
		}
	case nodeConstant:
		b.WriteString(strconv.FormatComplex(n.value, 'g', -1, 128))
	case nodeFunc:
		b.WriteString(funcNames[n.fn])
		b.WriteByte('(')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte(')')
	case nodeOperator:
		b.WriteString(opNames[n.op])
		b.WriteByte('(')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte(',')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte(')')
	default:
		// Invalid nodes use an invalid character.
		b.WriteByte('$')
	}
}

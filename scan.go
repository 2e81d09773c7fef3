package formula

import "strconv"

// The scanner produces one syntax tree leaf or operator token per call from
// a span of the normalized input. Offsets index bytes of the
// whitespace-stripped expression and appear unchanged in errors.

// maxIndexDigits bounds the digit run of a numbered variable.
const maxIndexDigits = 10

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNamePart(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '^':
		return true
	}
	return false
}

// matchParen returns the offset of the ')' matching the '(' at open,
// scanning no further than end.
func matchParen(src string, open, end int) (int, error) {
	depth := 1
	for j := open + 1; j < end; j++ {
		switch src[j] {
		case '(':
			depth++
		case ')':
			if depth--; depth == 0 {
				return j, nil
			}
		}
	}
	return 0, errAt(ErrOpenBraces, open)
}

// scanValue scans one value token at off: a parenthesized subexpression, a
// function call, an identifier, or a numeric literal. It returns the token
// and the offset of the first unconsumed byte.
func (p *Parser) scanValue(src string, off, end int) (*node, int, error) {
	switch c := src[off]; {
	case c == '(':
		rp, err := matchParen(src, off, end)
		if err != nil {
			return nil, 0, err
		}
		n, err := p.parseSpan(src, off+1, rp)
		if err != nil {
			return nil, 0, err
		}
		return n, rp + 1, nil
	case isLetter(c):
		return p.scanIdent(src, off, end)
	case isDigit(c), c == '-', c == '.':
		return scanNumber(src, off, end)
	}
	return nil, 0, errAt(ErrUnknownSymbol, off)
}

// scanIdent scans the maximal letter/digit/underscore run at off. A run
// followed by '(' is a function call; its single operand is the
// parenthesized content. Otherwise the run must be one of the literal
// identifier forms: i, c, z, or z followed by an index.
func (p *Parser) scanIdent(src string, off, end int) (*node, int, error) {
	i := off + 1
	for i < end && isNamePart(src[i]) {
		i++
	}
	name := src[off:i]
	if i < end && src[i] == '(' {
		fn, ok := funcByName(name)
		if !ok {
			return nil, 0, errAt(ErrUnknownSymbol, off)
		}
		p.ratchet(fn)
		arg, next, err := p.scanValue(src, i, end)
		if err != nil {
			return nil, 0, err
		}
		return &node{kind: nodeFunc, fn: fn, left: arg}, next, nil
	}
	switch {
	case name == "i":
		return &node{kind: nodeConstant, value: 1i}, i, nil
	case name == "c":
		p.used[-1] = true
		return &node{kind: nodeVariable, index: -1}, i, nil
	case name[0] == 'z':
		idx, err := variableIndex(name, off)
		if err != nil {
			return nil, 0, err
		}
		p.used[idx] = true
		return &node{kind: nodeVariable, index: idx}, i, nil
	}
	return nil, 0, errAt(ErrUnexpectedSymbol, off)
}

// variableIndex decodes the digit run of a z-variable name. Bare z is index
// 0; otherwise the run must be all digits with no leading zero and at most
// maxIndexDigits digits.
func variableIndex(name string, off int) (int, error) {
	digits := name[1:]
	if digits == "" {
		return 0, nil
	}
	if digits[0] == '0' || len(digits) > maxIndexDigits {
		return 0, errAt(ErrUnexpectedSymbol, off)
	}
	idx := 0
	for j := 0; j < len(digits); j++ {
		if !isDigit(digits[j]) {
			return 0, errAt(ErrUnexpectedSymbol, off)
		}
		idx = idx*10 + int(digits[j]-'0')
	}
	return idx, nil
}

// scanNumber scans a decimal literal: an optional leading minus, an integer
// part, and an optional fraction. At least one digit must be present. Only
// literals may carry a sign; -z is not negation of z.
func scanNumber(src string, off, end int) (*node, int, error) {
	i := off
	if i < end && src[i] == '-' {
		i++
	}
	digits := false
	for i < end && isDigit(src[i]) {
		i++
		digits = true
	}
	if i < end && src[i] == '.' {
		i++
		for i < end && isDigit(src[i]) {
			i++
			digits = true
		}
	}
	if !digits {
		return nil, 0, errAt(ErrUnexpectedSymbol, off)
	}
	v, err := strconv.ParseFloat(src[off:i], 64)
	if err != nil {
		return nil, 0, errAt(ErrUnexpectedSymbol, off)
	}
	return &node{kind: nodeConstant, value: complex(v, 0)}, i, nil
}

// scanOperator scans one of the five operator characters into a pending
// operator token with its fixed precedence.
func scanOperator(src string, off int) (*node, int, error) {
	var op opName
	var prec int
	switch src[off] {
	case '+':
		op, prec = opAdd, 0
	case '-':
		op, prec = opSub, 0
	case '*':
		op, prec = opMul, 1
	case '/':
		op, prec = opDiv, 1
	case '^':
		op, prec = opPow, 2
	default:
		return nil, 0, errAt(ErrOperatorExpected, off)
	}
	return &node{kind: nodeOperator, op: op, prec: prec}, off + 1, nil
}

package formula

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Precision is the widest numeric precision a formula is known to tolerate,
// inferred from the functions it uses. The transcendental functions are
// assumed to exist only in single-precision hardware; pos, re, and im are
// exact at any width.
type Precision int8

const (
	Single Precision = iota
	Double
	Extended
)

func (p Precision) String() string {
	switch p {
	case Single:
		return "single"
	case Double:
		return "double"
	case Extended:
		return "extended"
	}
	return "precision(" + strconv.Itoa(int(p)) + ")"
}

// Parser owns one parsed formula: the whitespace-stripped input, the syntax
// tree, the set of referenced variable indices, and the inferred precision
// capability. State is replaced atomically by a successful Parse; a failed
// Parse reverts to the cleared baseline, discarding any earlier result. A
// Parser is not safe for concurrent use.
type Parser struct {
	input string
	root  *node
	used  map[int]bool
	prec  Precision
}

// New creates a parser and parses the given formula.
func New(src string) (*Parser, error) {
	p := new(Parser)
	if err := p.Parse(src); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses a formula and replaces the parser's state with the result.
// All whitespace is stripped first, including inside names and numbers, so
// "z 1" and "z1" are the same formula. On failure the parser reverts to the
// cleared baseline and the error describes the first offending token.
func (p *Parser) Parse(src string) error {
	p.Clear()
	input := stripSpace(src)
	root, err := p.parseSpan(input, 0, len(input))
	if err != nil {
		p.Clear()
		return err
	}
	p.input = input
	p.root = root
	return nil
}

// Clear resets the parser to the empty baseline with maximum precision.
func (p *Parser) Clear() {
	p.input = ""
	p.root = nil
	p.used = make(map[int]bool)
	p.prec = Extended
}

// String renders the current syntax tree in prefix form; parsing "z*z+c"
// renders "add(mul(z,z),c)". The form is for inspection and is not
// guaranteed to re-parse. An empty parser renders "".
func (p *Parser) String() string {
	if p.root == nil {
		return ""
	}
	return p.root.String()
}

// Vars returns the sorted, deduplicated set of variable indices the current
// formula references.
func (p *Parser) Vars() []int {
	v := make([]int, 0, len(p.used))
	for i := range p.used {
		v = append(v, i)
	}
	sort.Ints(v)
	return v
}

// Precision reports the inferred precision capability of the current
// formula. An empty parser reports Extended.
func (p *Parser) Precision() Precision {
	if p.root == nil {
		return Extended
	}
	return p.prec
}

// ratchet downgrades the precision capability when a function without an
// exact wide implementation is recognized. The downgrade is one-directional
// for the duration of a parse.
func (p *Parser) ratchet(fn funcName) {
	switch fn {
	case fnPos, fnRe, fnIm:
		return
	}
	p.prec = Single
}

func stripSpace(src string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
}

// parseSpan tokenizes src[off:end] into an alternating value/operator
// sequence, then reduces it to a single node with one in-place compaction
// pass per precedence level, highest first. Each pass collapses operator
// triples left to right, which makes every level left-associative,
// including ^.
func (p *Parser) parseSpan(src string, off, end int) (*node, error) {
	if off >= end {
		return nil, errAt(ErrNoInput, 0)
	}
	var tokens []*node
	value := true
	for i := off; i < end; {
		var tok *node
		var err error
		switch {
		case value && isOperator(src[i]) && src[i] != '-':
			// An operator where a value belongs has no left operand.
			// Scan it anyway and let the reduction passes reject it,
			// so that +z reports the missing operand rather than a
			// stray character. A leading - starts a signed number.
			tok, i, err = scanOperator(src, i)
		case value:
			tok, i, err = p.scanValue(src, i, end)
			value = false
		default:
			tok, i, err = scanOperator(src, i)
			value = true
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	if value {
		// The span ran out while a value was still expected.
		return nil, errAt(ErrDanglingOperator, end-1)
	}

	count := len(tokens)
	for prec := 2; prec >= 0; prec-- {
		store, read := 0, 0
		for read < count {
			t := tokens[read]
			if t.kind == nodeOperator && t.left == nil && t.prec == prec {
				// The operator adopts the reduced value to its left and
				// the unreduced value to its right; the triple collapses
				// into the left slot.
				if store == 0 || read+1 >= count ||
					!tokens[store-1].resolved() || !tokens[read+1].resolved() {
					return nil, errAt(ErrEmptyFunction, 0)
				}
				t.left = tokens[store-1]
				t.right = tokens[read+1]
				tokens[store-1] = t
				read += 2
			} else {
				tokens[store] = t
				store++
				read++
			}
		}
		count = store
	}
	if count != 1 {
		return nil, errAt(ErrUnknown, 0)
	}
	return tokens[0], nil
}

package grammar

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"
	am "github.com/npillmayer/areamethod"
)

// negate is the operator id of unary minus, distinct from any token type.
const negate int = -'-'

func precedence(op int) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	case negate:
		return 3
	case '^':
		return 4
	}
	return 0
}

func isBinary(typ int) bool {
	switch typ {
	case '+', '-', '*', '/', '^':
		return true
	}
	return false
}

// expression parses an expression with operator precedence. Operands and
// pending operators are kept on two stacks. The expression ends with the
// first token which neither continues nor starts an operand.
func (p *parser) expression() (am.Expr, error) {
	operands := linkedliststack.New()
	operators := linkedliststack.New()
	expectOperand := true
	for {
		typ := p.ts.peek()
		if expectOperand {
			switch typ {
			case '-':
				p.ts.advance()
				operators.Push(negate)
				continue
			case '+':
				p.ts.advance()
				continue
			}
			e, err := p.primary()
			if err != nil {
				return am.Zero(), err
			}
			operands.Push(e)
			expectOperand = false
			continue
		}
		if !isBinary(typ) {
			break
		}
		for !operators.Empty() {
			top, _ := operators.Peek()
			prec, ptop := precedence(typ), precedence(top.(int))
			if ptop < prec || (ptop == prec && typ == '^') {
				break
			}
			operators.Pop()
			if err := reduce(top.(int), operands); err != nil {
				return am.Zero(), err
			}
		}
		p.ts.advance()
		operators.Push(typ)
		expectOperand = true
	}
	for !operators.Empty() {
		op, _ := operators.Pop()
		if err := reduce(op.(int), operands); err != nil {
			return am.Zero(), err
		}
	}
	e, _ := operands.Pop()
	return e.(am.Expr), nil
}

// reduce applies an operator to the topmost operands.
func reduce(op int, operands *linkedliststack.Stack) error {
	v, _ := operands.Pop()
	b := v.(am.Expr)
	if op == negate {
		operands.Push(b.Neg())
		return nil
	}
	v, _ = operands.Pop()
	a := v.(am.Expr)
	var r am.Expr
	var err error
	switch op {
	case '+':
		r = a.Add(b)
	case '-':
		r = a.Sub(b)
	case '*':
		r = a.Mul(b)
	case '/':
		if r, err = a.Quo(b); err != nil {
			return am.Malformed("division by zero: (%s)/(%s)", a, b)
		}
	case '^':
		n, ok := b.Rat()
		if !ok || !n.IsInt() || !n.Num().IsInt64() {
			return am.Malformed("exponent %s is not an integer", b)
		}
		if r, err = a.Pow(int(n.Num().Int64())); err != nil {
			return am.Malformed("cannot raise %s to %s", a, b)
		}
	}
	operands.Push(r)
	return nil
}

// primary reads a number, a parameter, an invariant or a parenthesized
// expression.
func (p *parser) primary() (am.Expr, error) {
	tok, err := p.ts.advance()
	if err != nil {
		return am.Zero(), err
	}
	switch tok.Type {
	case Number:
		return numberValue(string(tok.Lexeme))
	case '(':
		e, err := p.expression()
		if err != nil {
			return e, err
		}
		_, err = p.ts.match(')')
		return e, err
	case Ident:
		name := string(tok.Lexeme)
		if (name == "S" || name == "P" || name == "R") && p.ts.peek() == '(' {
			return p.invariant(name)
		}
		param := am.Param(name)
		if err := param.Validate(); err != nil {
			return am.Zero(), err
		}
		return am.Var(param), nil
	}
	return am.Zero(), p.ts.unexpected(tok, "operand")
}

// invariant reads the argument list of S, P or R.
func (p *parser) invariant(name string) (am.Expr, error) {
	if _, err := p.ts.match('('); err != nil {
		return am.Zero(), err
	}
	var args []am.Point
	for {
		pt, err := p.point()
		if err != nil {
			return am.Zero(), err
		}
		args = append(args, pt)
		if p.ts.peek() != ',' {
			break
		}
		p.ts.advance()
	}
	if _, err := p.ts.match(')'); err != nil {
		return am.Zero(), err
	}
	switch {
	case name == "S" && len(args) == 3:
		return am.S(args[0], args[1], args[2]), nil
	case name == "S" && len(args) == 4:
		return am.S4(args[0], args[1], args[2], args[3]), nil
	case name == "P" && len(args) == 3:
		return am.P(args[0], args[1], args[2]), nil
	case name == "P" && len(args) == 4:
		return am.P4(args[0], args[1], args[2], args[3]), nil
	case name == "R" && len(args) == 4:
		r, err := am.R(args[0], args[1], args[2], args[3])
		if err != nil {
			return r, am.Malformed("ratio %s%s/%s%s with empty denominator",
				args[0], args[1], args[2], args[3])
		}
		return r, nil
	}
	return am.Zero(), am.Malformed("%s takes %s points, not %d", name, arity(name), len(args))
}

func arity(name string) string {
	if name == "R" {
		return "4"
	}
	return "3 or 4"
}

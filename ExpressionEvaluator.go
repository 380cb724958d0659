package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"smartSheet/contracts"
)

// expression tokens after the allowlist check
type tokenType int

const (
	tokenNumber tokenType = iota
	tokenPlus
	tokenMinus
	tokenMultiply
	tokenDivide
	tokenLeftParen
	tokenRightParen
)

type token struct {
	kind  tokenType
	value float64
	pos   int
}

var DivisionByZeroError = fmt.Errorf("%w: %s", contracts.EvaluationError, "division by zero")

var ForbiddenCharacterError = fmt.Errorf("%w: %s", contracts.EvaluationError, "forbidden character")

var SyntaxError = fmt.Errorf("%w: %s", contracts.EvaluationError, "syntax error")

// ExpressionEvaluator computes arithmetic over numbers, + - * /, parentheses and whitespace.
//
//	expr    := term   (('+' | '-') term)*
//	term    := unary  (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | primary
//	primary := number | '(' expr ')'
type ExpressionEvaluator struct {
	allowlist *regexp.Regexp
}

func NewExpressionEvaluator() *ExpressionEvaluator {
	return &ExpressionEvaluator{
		allowlist: regexp.MustCompile(`^[0-9+\-*/().\s]*$`),
	}
}

func (e *ExpressionEvaluator) Evaluate(expression string) (float64, error) {
	if !e.allowlist.MatchString(expression) {
		return 0, fmt.Errorf("`%s`: %w", expression, ForbiddenCharacterError)
	}

	tokens, err := tokenize(expression)
	if err != nil {
		return 0, err
	}

	p := &expressionParser{tokens: tokens}
	result, err := p.parseExpression()
	if err != nil {
		return 0, err
	}

	if p.pos < len(p.tokens) {
		return 0, fmt.Errorf("%w: unexpected token at %d", SyntaxError, p.tokens[p.pos].pos)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("%w: result is not finite", contracts.EvaluationError)
	}

	return result, nil
}

func tokenize(expression string) ([]token, error) {
	tokens := make([]token, 0, len(expression)/2+1)

	for pos := 0; pos < len(expression); {
		char := expression[pos]
		switch {
		case char == ' ' || char == '\t' || char == '\n' || char == '\r' || char == '\f':
			pos++
		case char == '+':
			tokens = append(tokens, token{kind: tokenPlus, pos: pos})
			pos++
		case char == '-':
			tokens = append(tokens, token{kind: tokenMinus, pos: pos})
			pos++
		case char == '*':
			tokens = append(tokens, token{kind: tokenMultiply, pos: pos})
			pos++
		case char == '/':
			tokens = append(tokens, token{kind: tokenDivide, pos: pos})
			pos++
		case char == '(':
			tokens = append(tokens, token{kind: tokenLeftParen, pos: pos})
			pos++
		case char == ')':
			tokens = append(tokens, token{kind: tokenRightParen, pos: pos})
			pos++
		case isDigit(char) || char == '.':
			start := pos
			for pos < len(expression) && (isDigit(expression[pos]) || expression[pos] == '.') {
				pos++
			}

			literal := expression[start:pos]
			value, err := strconv.ParseFloat(literal, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number `%s` at %d", SyntaxError, literal, start)
			}
			tokens = append(tokens, token{kind: tokenNumber, value: value, pos: start})
		default:
			return nil, fmt.Errorf("%w: `%c` at %d", ForbiddenCharacterError, char, pos)
		}
	}

	return tokens, nil
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

type expressionParser struct {
	tokens []token
	pos    int
}

func (p *expressionParser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *expressionParser) parseExpression() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokenPlus && tok.kind != tokenMinus) {
			return left, nil
		}

		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}

		if tok.kind == tokenPlus {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *expressionParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokenMultiply && tok.kind != tokenDivide) {
			return left, nil
		}

		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}

		if tok.kind == tokenMultiply {
			left *= right
		} else {
			if right == 0 {
				return 0, fmt.Errorf("%w at %d", DivisionByZeroError, tok.pos)
			}
			left /= right
		}
	}
}

func (p *expressionParser) parseUnary() (float64, error) {
	tok, ok := p.peek()
	if ok && (tok.kind == tokenPlus || tok.kind == tokenMinus) {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return 0, err
		}

		if tok.kind == tokenMinus {
			return -operand, nil
		}
		return operand, nil
	}

	return p.parsePrimary()
}

func (p *expressionParser) parsePrimary() (float64, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of expression", SyntaxError)
	}

	switch tok.kind {
	case tokenNumber:
		p.pos++
		return tok.value, nil

	case tokenLeftParen:
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return 0, err
		}

		closing, ok := p.peek()
		if !ok || closing.kind != tokenRightParen {
			return 0, fmt.Errorf("%w: missing `)` for `(` at %d", SyntaxError, tok.pos)
		}
		p.pos++
		return value, nil
	}

	return 0, fmt.Errorf("%w: unexpected token at %d", SyntaxError, tok.pos)
}

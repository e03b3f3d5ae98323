package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/efp"

	"campaignSheets/contracts"
)

const FormulaPrefix = "="

var FormulaSyntaxError = errors.New("formula syntax error")

var UnknownIdentifierError = fmt.Errorf("%w: unknown identifier", FormulaSyntaxError)

const (
	precedenceComparison = iota + 1
	precedenceAdditive
	precedenceMultiplicative
)

var infixPrecedence = map[string]int{
	"=":  precedenceComparison,
	"<>": precedenceComparison,
	"<":  precedenceComparison,
	">":  precedenceComparison,
	"<=": precedenceComparison,
	">=": precedenceComparison,
	"+":  precedenceAdditive,
	"-":  precedenceAdditive,
	"*":  precedenceMultiplicative,
	"/":  precedenceMultiplicative,
}

// FormulaParser turns a `=`-prefixed raw input into an expression tree.
// Tokenization is delegated to efp; the precedence climbing on top keeps
// comparison below additive below multiplicative, all left-associative.
// An efp parser keeps its offset and token list across Parse calls, so each
// formula gets a fresh one.
type FormulaParser struct {
}

func NewFormulaParser() *FormulaParser {
	return &FormulaParser{}
}

func (p *FormulaParser) IsFormula(rawInput string) bool {
	return strings.HasPrefix(rawInput, FormulaPrefix)
}

func (p *FormulaParser) Parse(rawInput string) (Expression, error) {
	tokenizer := efp.ExcelParser()
	tokens := tokenizer.Parse(strings.TrimPrefix(rawInput, FormulaPrefix))

	stream := newTokenStream(tokens)
	expression, err := stream.parseExpression(precedenceComparison)
	if err != nil {
		return nil, err
	}

	if !stream.atEnd() {
		return nil, fmt.Errorf("%w: unexpected %q", FormulaSyntaxError, stream.peek().TValue)
	}

	return expression, nil
}

type tokenStream struct {
	tokens   []efp.Token
	position int
}

func newTokenStream(tokens []efp.Token) *tokenStream {
	meaningful := make([]efp.Token, 0, len(tokens))
	for _, token := range tokens {
		if token.TType == efp.TokenTypeWhitespace || token.TType == efp.TokenTypeNoop {
			continue
		}
		meaningful = append(meaningful, token)
	}
	return &tokenStream{tokens: meaningful}
}

func (s *tokenStream) atEnd() bool {
	return s.position >= len(s.tokens)
}

func (s *tokenStream) peek() *efp.Token {
	if s.atEnd() {
		return nil
	}
	return &s.tokens[s.position]
}

func (s *tokenStream) next() *efp.Token {
	token := s.peek()
	if token != nil {
		s.position++
	}
	return token
}

func (s *tokenStream) parseExpression(minPrecedence int) (Expression, error) {
	left, err := s.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		token := s.peek()
		if token == nil || token.TType != efp.TokenTypeOperatorInfix {
			return left, nil
		}

		precedence, supported := infixPrecedence[token.TValue]
		if !supported {
			return nil, fmt.Errorf("%w: unsupported operator %q", FormulaSyntaxError, token.TValue)
		}
		if precedence < minPrecedence {
			return left, nil
		}

		s.next()
		right, err := s.parseExpression(precedence + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpression{Operator: token.TValue, Left: left, Right: right}
	}
}

func (s *tokenStream) parseUnary() (Expression, error) {
	token := s.peek()
	if token != nil && token.TType == efp.TokenTypeOperatorPrefix {
		s.next()
		operand, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		if token.TValue == "+" {
			return operand, nil
		}
		return &UnaryExpression{Operand: operand}, nil
	}

	return s.parseAtom()
}

func (s *tokenStream) parseAtom() (Expression, error) {
	token := s.next()
	if token == nil {
		return nil, fmt.Errorf("%w: unexpected end of formula", FormulaSyntaxError)
	}

	switch token.TType {
	case efp.TokenTypeOperand:
		return s.parseOperand(token)

	case efp.TokenTypeFunction:
		if token.TSubType != efp.TokenSubTypeStart {
			return nil, fmt.Errorf("%w: unexpected %q", FormulaSyntaxError, token.TValue)
		}
		return s.parseFunctionCall(strings.ToUpper(token.TValue))

	case efp.TokenTypeSubexpression:
		if token.TSubType != efp.TokenSubTypeStart {
			return nil, fmt.Errorf("%w: unexpected %q", FormulaSyntaxError, token.TValue)
		}
		inner, err := s.parseExpression(precedenceComparison)
		if err != nil {
			return nil, err
		}
		closing := s.next()
		if closing == nil || closing.TType != efp.TokenTypeSubexpression || closing.TSubType != efp.TokenSubTypeStop {
			return nil, fmt.Errorf("%w: missing closing parenthesis", FormulaSyntaxError)
		}
		return inner, nil
	}

	return nil, fmt.Errorf("%w: unexpected %q", FormulaSyntaxError, token.TValue)
}

func (s *tokenStream) parseOperand(token *efp.Token) (Expression, error) {
	switch token.TSubType {
	case efp.TokenSubTypeNumber:
		number, err := decimal.NewFromString(token.TValue)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", FormulaSyntaxError, token.TValue)
		}
		return &NumberLiteral{Value: number}, nil

	case efp.TokenSubTypeText:
		return &StringLiteral{Value: token.TValue}, nil

	case efp.TokenSubTypeLogical:
		return &BooleanLiteral{Value: strings.EqualFold(token.TValue, contracts.TrueLiteral)}, nil

	case efp.TokenSubTypeRange:
		cellId := CanonicalizeCellId(token.TValue)
		if !IsCellId(cellId) {
			return nil, fmt.Errorf("%w: %q", UnknownIdentifierError, token.TValue)
		}
		return &CellReference{CellId: cellId}, nil
	}

	return nil, fmt.Errorf("%w: unexpected operand %q", FormulaSyntaxError, token.TValue)
}

func (s *tokenStream) parseFunctionCall(name string) (Expression, error) {
	call := &FunctionCall{Name: name}

	closing := s.peek()
	if closing != nil && closing.TType == efp.TokenTypeFunction && closing.TSubType == efp.TokenSubTypeStop {
		s.next()
		return call, nil
	}

	for {
		argument, err := s.parseExpression(precedenceComparison)
		if err != nil {
			return nil, err
		}
		call.Arguments = append(call.Arguments, argument)

		separator := s.next()
		if separator == nil {
			return nil, fmt.Errorf("%w: unterminated call of %s", FormulaSyntaxError, name)
		}
		if separator.TType == efp.TokenTypeArgument {
			continue
		}
		if separator.TType == efp.TokenTypeFunction && separator.TSubType == efp.TokenSubTypeStop {
			return call, nil
		}
		return nil, fmt.Errorf("%w: unexpected %q in call of %s", FormulaSyntaxError, separator.TValue, name)
	}
}

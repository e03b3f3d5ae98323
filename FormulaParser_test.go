package main

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFormulaParser_IsFormula(t *testing.T) {
	parser := NewFormulaParser()

	assert.True(t, parser.IsFormula("=A1+B1"))
	assert.True(t, parser.IsFormula("=1"))

	assert.False(t, parser.IsFormula("1"))
	assert.False(t, parser.IsFormula("hello"))
	assert.False(t, parser.IsFormula(""))
	assert.False(t, parser.IsFormula(" =1"))
}

func TestFormulaParser_Parse(t *testing.T) {
	parser := NewFormulaParser()

	t.Run("number literal", func(t *testing.T) {
		expression, err := parser.Parse("=42.5")

		assert.NoError(t, err)
		number, ok := expression.(*NumberLiteral)
		assert.True(t, ok)
		assert.True(t, number.Value.Equal(decimal.RequireFromString("42.5")))
	})

	t.Run("string literal", func(t *testing.T) {
		expression, err := parser.Parse(`="hello"`)

		assert.NoError(t, err)
		text, ok := expression.(*StringLiteral)
		assert.True(t, ok)
		assert.Equal(t, "hello", text.Value)
	})

	t.Run("boolean literal", func(t *testing.T) {
		expression, err := parser.Parse("=TRUE")

		assert.NoError(t, err)
		boolean, ok := expression.(*BooleanLiteral)
		assert.True(t, ok)
		assert.True(t, boolean.Value)
	})

	t.Run("cell reference is canonicalized", func(t *testing.T) {
		expression, err := parser.Parse("=b2")

		assert.NoError(t, err)
		reference, ok := expression.(*CellReference)
		assert.True(t, ok)
		assert.Equal(t, "B2", reference.CellId)
	})

	t.Run("multiplication binds tighter than addition", func(t *testing.T) {
		expression, err := parser.Parse("=1+2*3")

		assert.NoError(t, err)
		sum, ok := expression.(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, "+", sum.Operator)

		product, ok := sum.Right.(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, "*", product.Operator)
	})

	t.Run("comparison binds loosest", func(t *testing.T) {
		expression, err := parser.Parse("=1+1=2")

		assert.NoError(t, err)
		comparison, ok := expression.(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, "=", comparison.Operator)

		_, ok = comparison.Left.(*BinaryExpression)
		assert.True(t, ok)
	})

	t.Run("subtraction is left-associative", func(t *testing.T) {
		expression, err := parser.Parse("=10-3-2")

		assert.NoError(t, err)
		outer, ok := expression.(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, "-", outer.Operator)

		inner, ok := outer.Left.(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, "-", inner.Operator)
	})

	t.Run("parentheses override precedence", func(t *testing.T) {
		expression, err := parser.Parse("=(1+2)*3")

		assert.NoError(t, err)
		product, ok := expression.(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, "*", product.Operator)

		sum, ok := product.Left.(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, "+", sum.Operator)
	})

	t.Run("unary minus", func(t *testing.T) {
		expression, err := parser.Parse("=-A1")

		assert.NoError(t, err)
		negation, ok := expression.(*UnaryExpression)
		assert.True(t, ok)

		_, ok = negation.Operand.(*CellReference)
		assert.True(t, ok)
	})

	t.Run("unary plus is dropped", func(t *testing.T) {
		expression, err := parser.Parse("=+5")

		assert.NoError(t, err)
		_, ok := expression.(*NumberLiteral)
		assert.True(t, ok)
	})

	t.Run("function call", func(t *testing.T) {
		expression, err := parser.Parse("=sum(A1, B2, 3)")

		assert.NoError(t, err)
		call, ok := expression.(*FunctionCall)
		assert.True(t, ok)
		assert.Equal(t, "SUM", call.Name)
		assert.Len(t, call.Arguments, 3)
	})

	t.Run("function call without arguments", func(t *testing.T) {
		expression, err := parser.Parse("=SUM()")

		assert.NoError(t, err)
		call, ok := expression.(*FunctionCall)
		assert.True(t, ok)
		assert.Empty(t, call.Arguments)
	})

	t.Run("nested function call", func(t *testing.T) {
		expression, err := parser.Parse("=IF(A1>2, SUM(B1,B2), 0)")

		assert.NoError(t, err)
		call, ok := expression.(*FunctionCall)
		assert.True(t, ok)
		assert.Equal(t, "IF", call.Name)
		assert.Len(t, call.Arguments, 3)

		condition, ok := call.Arguments[0].(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, ">", condition.Operator)

		inner, ok := call.Arguments[1].(*FunctionCall)
		assert.True(t, ok)
		assert.Equal(t, "SUM", inner.Name)
	})

	t.Run("sequential parses are independent", func(t *testing.T) {
		_, err := parser.Parse("=IF(A1>0, 1, 2)")
		assert.NoError(t, err)

		expression, err := parser.Parse("=1+2")
		assert.NoError(t, err)

		sum, ok := expression.(*BinaryExpression)
		assert.True(t, ok)
		assert.Equal(t, "+", sum.Operator)

		left, ok := sum.Left.(*NumberLiteral)
		assert.True(t, ok)
		assert.True(t, left.Value.Equal(decimal.New(1, 0)))

		right, ok := sum.Right.(*NumberLiteral)
		assert.True(t, ok)
		assert.True(t, right.Value.Equal(decimal.New(2, 0)))
	})

	t.Run("trailing operator", func(t *testing.T) {
		_, err := parser.Parse("=1+")

		assert.Error(t, err)
		assert.ErrorIs(t, err, FormulaSyntaxError)
	})

	t.Run("leading infix operator", func(t *testing.T) {
		_, err := parser.Parse("=*2")

		assert.Error(t, err)
		assert.ErrorIs(t, err, FormulaSyntaxError)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := parser.Parse("=unknown")

		assert.Error(t, err)
		assert.ErrorIs(t, err, UnknownIdentifierError)
		assert.ErrorIs(t, err, FormulaSyntaxError)
	})

	t.Run("too many column letters is not a reference", func(t *testing.T) {
		_, err := parser.Parse("=AAAAAAAA1")

		assert.Error(t, err)
		assert.ErrorIs(t, err, UnknownIdentifierError)
	})

	t.Run("unsupported operator", func(t *testing.T) {
		_, err := parser.Parse(`="a"&"b"`)

		assert.Error(t, err)
		assert.ErrorIs(t, err, FormulaSyntaxError)
		assert.NotErrorIs(t, err, UnknownIdentifierError)
	})
}

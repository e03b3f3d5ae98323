package main

import (
	"errors"

	"github.com/shopspring/decimal"

	"campaignSheets/contracts"
)

// QuantizeDecimalPlaces is applied once, at the moment an arithmetic result
// is produced. Literals and reference reads keep their full precision.
const QuantizeDecimalPlaces = 2

// FormulaEngine evaluates raw cell input against a read-only snapshot of
// computed cell values. All failures are in-band error values; the engine
// itself never fails.
type FormulaEngine struct {
	parser    *FormulaParser
	functions map[string]BuiltinFunction
}

func NewFormulaEngine() *FormulaEngine {
	return &FormulaEngine{
		parser:    NewFormulaParser(),
		functions: builtinFunctions(),
	}
}

func (e *FormulaEngine) IsFormula(rawInput string) bool {
	return e.parser.IsFormula(rawInput)
}

func (e *FormulaEngine) Evaluate(rawInput string, snapshot contracts.CellSnapshot) contracts.Value {
	if !e.IsFormula(rawInput) {
		return ClassifyLiteral(rawInput)
	}

	expression, err := e.parser.Parse(rawInput)
	if err != nil {
		if errors.Is(err, UnknownIdentifierError) {
			return contracts.ErrorValue(contracts.ErrorCodeName)
		}
		return contracts.ErrorValue(contracts.ErrorCodeSyntax)
	}

	return e.evaluate(expression, snapshot)
}

func (e *FormulaEngine) References(rawInput string) []string {
	references := make([]string, 0)
	if !e.IsFormula(rawInput) {
		return references
	}

	expression, err := e.parser.Parse(rawInput)
	if err != nil {
		return references
	}

	collectReferences(expression, map[string]bool{}, &references)
	return references
}

// ClassifyLiteral types a non-formula raw input: numeric parse first, text
// fallback. Numeric literals keep the precision they were written with.
func ClassifyLiteral(rawInput string) contracts.Value {
	if number, err := decimal.NewFromString(rawInput); err == nil {
		return contracts.NumberValue(number)
	}
	return contracts.TextValue(rawInput)
}

func (e *FormulaEngine) evaluate(expression Expression, snapshot contracts.CellSnapshot) contracts.Value {
	switch node := expression.(type) {
	case *NumberLiteral:
		return contracts.NumberValue(node.Value)
	case *StringLiteral:
		return contracts.TextValue(node.Value)
	case *BooleanLiteral:
		return contracts.BooleanValue(node.Value)
	case *CellReference:
		return readReference(node.CellId, snapshot)
	case *UnaryExpression:
		return e.negate(e.evaluate(node.Operand, snapshot))
	case *BinaryExpression:
		return e.evaluateBinary(node, snapshot)
	case *FunctionCall:
		return e.evaluateCall(node, snapshot)
	}
	return contracts.ErrorValue(contracts.ErrorCodeSyntax)
}

// readReference implements the lenient reference policy: a cell without a
// materialized value, including positions outside the sheet bounds, reads
// as the number 0.
func readReference(cellId string, snapshot contracts.CellSnapshot) contracts.Value {
	if snapshot != nil {
		if value := snapshot(cellId); value != nil {
			return *value
		}
	}
	return contracts.NumberValue(decimal.Zero)
}

func (e *FormulaEngine) negate(operand contracts.Value) contracts.Value {
	if operand.IsError() {
		return operand
	}
	number, ok := coerceToNumber(operand)
	if !ok {
		return contracts.ErrorValue(contracts.ErrorCodeValue)
	}
	return contracts.NumberValue(number.Neg())
}

func (e *FormulaEngine) evaluateBinary(node *BinaryExpression, snapshot contracts.CellSnapshot) contracts.Value {
	left := e.evaluate(node.Left, snapshot)
	if left.IsError() {
		return left
	}
	right := e.evaluate(node.Right, snapshot)
	if right.IsError() {
		return right
	}

	switch node.Operator {
	case "+", "-", "*", "/":
		return applyArithmetic(node.Operator, left, right)
	case "=":
		return contracts.BooleanValue(valuesEqual(left, right))
	case "<>":
		return contracts.BooleanValue(!valuesEqual(left, right))
	}
	return applyOrdering(node.Operator, left, right)
}

func applyArithmetic(operator string, left contracts.Value, right contracts.Value) contracts.Value {
	leftNumber, ok := coerceToNumber(left)
	if !ok {
		return contracts.ErrorValue(contracts.ErrorCodeValue)
	}
	rightNumber, ok := coerceToNumber(right)
	if !ok {
		return contracts.ErrorValue(contracts.ErrorCodeValue)
	}

	var result decimal.Decimal
	switch operator {
	case "+":
		result = leftNumber.Add(rightNumber)
	case "-":
		result = leftNumber.Sub(rightNumber)
	case "*":
		result = leftNumber.Mul(rightNumber)
	default:
		if rightNumber.IsZero() {
			return contracts.ErrorValue(contracts.ErrorCodeDivZero)
		}
		result = leftNumber.Div(rightNumber)
	}

	return contracts.NumberValue(quantize(result))
}

func applyOrdering(operator string, left contracts.Value, right contracts.Value) contracts.Value {
	// ordering is defined for numbers only
	if left.Kind != contracts.KindNumber || right.Kind != contracts.KindNumber {
		return contracts.ErrorValue(contracts.ErrorCodeValue)
	}

	comparison := left.Number.Cmp(right.Number)
	switch operator {
	case "<":
		return contracts.BooleanValue(comparison < 0)
	case ">":
		return contracts.BooleanValue(comparison > 0)
	case "<=":
		return contracts.BooleanValue(comparison <= 0)
	case ">=":
		return contracts.BooleanValue(comparison >= 0)
	}
	return contracts.ErrorValue(contracts.ErrorCodeSyntax)
}

// valuesEqual compares same-typed values; operands of different kinds are
// simply not equal.
func valuesEqual(left contracts.Value, right contracts.Value) bool {
	if left.Kind != right.Kind {
		return false
	}
	switch left.Kind {
	case contracts.KindNumber:
		return left.Number.Equal(right.Number)
	case contracts.KindBoolean:
		return left.Bool == right.Bool
	default:
		return left.Text == right.Text
	}
}

func (e *FormulaEngine) evaluateCall(node *FunctionCall, snapshot contracts.CellSnapshot) contracts.Value {
	if node.Name == "IF" {
		return e.evaluateIf(node, snapshot)
	}

	builtin, known := e.functions[node.Name]
	if !known {
		return contracts.ErrorValue(contracts.ErrorCodeName)
	}

	arguments := make([]contracts.Value, len(node.Arguments))
	for index, argument := range node.Arguments {
		arguments[index] = e.evaluate(argument, snapshot)
		if arguments[index].IsError() {
			return arguments[index]
		}
	}
	return builtin(arguments)
}

// evaluateIf evaluates the condition first, then exactly one branch. The
// untaken branch is never evaluated, whatever errors it would raise.
func (e *FormulaEngine) evaluateIf(node *FunctionCall, snapshot contracts.CellSnapshot) contracts.Value {
	if len(node.Arguments) != 3 {
		return contracts.ErrorValue(contracts.ErrorCodeValue)
	}

	condition := e.evaluate(node.Arguments[0], snapshot)
	if condition.IsError() {
		return condition
	}

	if isTruthy(condition) {
		return e.evaluate(node.Arguments[1], snapshot)
	}
	return e.evaluate(node.Arguments[2], snapshot)
}

// isTruthy: non-zero numbers and non-empty text are truthy.
func isTruthy(value contracts.Value) bool {
	switch value.Kind {
	case contracts.KindBoolean:
		return value.Bool
	case contracts.KindNumber:
		return !value.Number.IsZero()
	case contracts.KindText:
		return value.Text != ""
	}
	return false
}

func coerceToNumber(value contracts.Value) (decimal.Decimal, bool) {
	switch value.Kind {
	case contracts.KindNumber:
		return value.Number, true
	case contracts.KindBoolean:
		if value.Bool {
			return decimal.New(1, 0), true
		}
		return decimal.Zero, true
	case contracts.KindText:
		number, err := decimal.NewFromString(value.Text)
		return number, err == nil
	}
	return decimal.Zero, false
}

func quantize(number decimal.Decimal) decimal.Decimal {
	return number.Round(QuantizeDecimalPlaces)
}

package contracts

import "github.com/shopspring/decimal"

// ValueKind enumerates the four computed value variants. Every operator in the
// engine is total over all four.
type ValueKind uint8

const (
	KindNumber ValueKind = iota
	KindText
	KindBoolean
	KindError
)

type ErrorCode string

const (
	ErrorCodeDivZero  ErrorCode = "#DIV/0!"
	ErrorCodeValue    ErrorCode = "#VALUE!"
	ErrorCodeName     ErrorCode = "#NAME!"
	ErrorCodeSyntax   ErrorCode = "#ERROR!"
	ErrorCodeCircular ErrorCode = "#CIRCULAR!"
)

const TrueLiteral = "TRUE"
const FalseLiteral = "FALSE"

type Value struct {
	Kind   ValueKind
	Number decimal.Decimal
	Text   string
	Bool   bool
	Code   ErrorCode
}

func NumberValue(number decimal.Decimal) Value {
	return Value{Kind: KindNumber, Number: number}
}

func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

func BooleanValue(b bool) Value {
	return Value{Kind: KindBoolean, Bool: b}
}

func ErrorValue(code ErrorCode) Value {
	return Value{Kind: KindError, Code: code}
}

func (v Value) IsError() bool {
	return v.Kind == KindError
}

// Display renders the value the way it is exposed to string consumers.
// Booleans render as the canonical TRUE/FALSE literals.
func (v Value) Display() string {
	switch v.Kind {
	case KindNumber:
		return v.Number.String()
	case KindBoolean:
		if v.Bool {
			return TrueLiteral
		}
		return FalseLiteral
	case KindError:
		return string(v.Code)
	default:
		return v.Text
	}
}

// FillCell writes the value into the computed fields of a cell record,
// clearing payloads of other kinds first. Exactly one payload field carries
// data afterwards; ErrorCode is set if and only if the type is ERROR.
func (v Value) FillCell(cell *Cell) {
	cell.ComputedNumber = nil
	cell.ComputedString = nil
	cell.ErrorCode = ""

	switch v.Kind {
	case KindNumber:
		number := v.Number
		cell.ComputedType = CellTypeNumber
		cell.ComputedNumber = &number
	case KindBoolean:
		rendered := v.Display()
		cell.ComputedType = CellTypeBoolean
		cell.ComputedString = &rendered
	case KindError:
		cell.ComputedType = CellTypeError
		cell.ErrorCode = v.Code
	default:
		text := v.Text
		cell.ComputedType = CellTypeString
		cell.ComputedString = &text
	}
}

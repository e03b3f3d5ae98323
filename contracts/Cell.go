package contracts

import (
	"errors"

	"github.com/shopspring/decimal"
)

type CellType string

const (
	CellTypeNumber  CellType = "NUMBER"
	CellTypeString  CellType = "STRING"
	CellTypeBoolean CellType = "BOOLEAN"
	CellTypeError   CellType = "ERROR"
)

type Cell struct {
	CellId         string           `json:"cell_id"`
	Row            int              `json:"row"`
	Column         int              `json:"column"`
	RawInput       string           `json:"raw_input"`
	ComputedType   CellType         `json:"computed_type"`
	ComputedNumber *decimal.Decimal `json:"computed_number,omitempty"`
	ComputedString *string          `json:"computed_string,omitempty"`
	ErrorCode      ErrorCode        `json:"error_code,omitempty"`
}

type CellList map[string]*Cell

const OperationSet = "set"

type SetOperation struct {
	Operation string `json:"operation" binding:"required"`
	Row       int    `json:"row"`
	Column    int    `json:"column"`
	RawInput  string `json:"raw_input"`
}

var CellNotFoundError = errors.New("cell not found")

var CellOutOfBoundsError = errors.New("cell position is outside sheet bounds")

var InvalidCellIdError = errors.New("invalid cell id")

var UnknownOperationError = errors.New("unknown batch operation")

// ComputedValue reconstructs the typed value from the persisted computed
// fields. Missing payloads degrade to the zero value of the recorded type.
func (c *Cell) ComputedValue() Value {
	switch c.ComputedType {
	case CellTypeNumber:
		if c.ComputedNumber == nil {
			return NumberValue(decimal.Zero)
		}
		return NumberValue(*c.ComputedNumber)
	case CellTypeBoolean:
		return BooleanValue(c.ComputedString != nil && *c.ComputedString == TrueLiteral)
	case CellTypeError:
		return ErrorValue(c.ErrorCode)
	default:
		if c.ComputedString == nil {
			return TextValue("")
		}
		return TextValue(*c.ComputedString)
	}
}

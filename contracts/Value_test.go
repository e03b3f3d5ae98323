package contracts

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestValue_Display(t *testing.T) {
	assert.Equal(t, "2.5", NumberValue(decimal.RequireFromString("2.5")).Display())
	assert.Equal(t, "hello", TextValue("hello").Display())
	assert.Equal(t, "TRUE", BooleanValue(true).Display())
	assert.Equal(t, "FALSE", BooleanValue(false).Display())
	assert.Equal(t, "#DIV/0!", ErrorValue(ErrorCodeDivZero).Display())
}

func TestValue_IsError(t *testing.T) {
	assert.True(t, ErrorValue(ErrorCodeValue).IsError())

	assert.False(t, NumberValue(decimal.Zero).IsError())
	assert.False(t, TextValue("").IsError())
	assert.False(t, BooleanValue(false).IsError())
}

func TestValue_FillCell(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		cell := &Cell{}
		NumberValue(decimal.RequireFromString("6")).FillCell(cell)

		assert.Equal(t, CellTypeNumber, cell.ComputedType)
		assert.NotNil(t, cell.ComputedNumber)
		assert.Equal(t, "6", cell.ComputedNumber.String())
		assert.Nil(t, cell.ComputedString)
		assert.Empty(t, cell.ErrorCode)
	})

	t.Run("text", func(t *testing.T) {
		cell := &Cell{}
		TextValue("hello").FillCell(cell)

		assert.Equal(t, CellTypeString, cell.ComputedType)
		assert.NotNil(t, cell.ComputedString)
		assert.Equal(t, "hello", *cell.ComputedString)
		assert.Nil(t, cell.ComputedNumber)
	})

	t.Run("boolean", func(t *testing.T) {
		cell := &Cell{}
		BooleanValue(true).FillCell(cell)

		assert.Equal(t, CellTypeBoolean, cell.ComputedType)
		assert.NotNil(t, cell.ComputedString)
		assert.Equal(t, TrueLiteral, *cell.ComputedString)
	})

	t.Run("error", func(t *testing.T) {
		cell := &Cell{}
		ErrorValue(ErrorCodeCircular).FillCell(cell)

		assert.Equal(t, CellTypeError, cell.ComputedType)
		assert.Equal(t, ErrorCodeCircular, cell.ErrorCode)
		assert.Nil(t, cell.ComputedNumber)
		assert.Nil(t, cell.ComputedString)
	})

	t.Run("overwriting clears the previous payload", func(t *testing.T) {
		cell := &Cell{}
		NumberValue(decimal.RequireFromString("1")).FillCell(cell)
		TextValue("now text").FillCell(cell)

		assert.Equal(t, CellTypeString, cell.ComputedType)
		assert.Nil(t, cell.ComputedNumber)
		assert.NotNil(t, cell.ComputedString)
	})
}

func TestCell_ComputedValue(t *testing.T) {
	t.Run("roundtrip through FillCell", func(t *testing.T) {
		values := []Value{
			NumberValue(decimal.RequireFromString("2.33")),
			TextValue("hello"),
			BooleanValue(true),
			BooleanValue(false),
			ErrorValue(ErrorCodeDivZero),
		}

		for _, value := range values {
			cell := &Cell{}
			value.FillCell(cell)

			restored := cell.ComputedValue()
			assert.Equal(t, value.Kind, restored.Kind)
			assert.Equal(t, value.Display(), restored.Display())
		}
	})

	t.Run("missing payloads degrade to zero values", func(t *testing.T) {
		assert.Equal(t, "0", (&Cell{ComputedType: CellTypeNumber}).ComputedValue().Display())
		assert.Equal(t, "", (&Cell{ComputedType: CellTypeString}).ComputedValue().Display())
		assert.Equal(t, "FALSE", (&Cell{ComputedType: CellTypeBoolean}).ComputedValue().Display())
	})
}

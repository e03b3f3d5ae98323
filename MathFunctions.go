package main

import (
	"github.com/shopspring/decimal"

	"campaignSheets/contracts"
)

// BuiltinFunction is a pure function over already-evaluated argument values.
// Arguments never contain errors; the evaluator propagates those before the
// call. Numeric results are quantized like any other arithmetic result.
type BuiltinFunction func(arguments []contracts.Value) contracts.Value

func builtinFunctions() map[string]BuiltinFunction {
	return map[string]BuiltinFunction{
		"SUM": calculateSum,
		"MIN": calculateMin,
		"MAX": calculateMax,
		"AVG": calculateAvg,
	}
}

var calculateSum = func(arguments []contracts.Value) contracts.Value {
	numbers, errValue := numericArguments(arguments)
	if errValue != nil {
		return *errValue
	}

	total := decimal.Zero
	for _, number := range numbers {
		total = total.Add(number)
	}
	return contracts.NumberValue(quantize(total))
}

var calculateMin = func(arguments []contracts.Value) contracts.Value {
	numbers, errValue := numericArguments(arguments)
	if errValue != nil {
		return *errValue
	}

	minValue := numbers[0]
	for _, number := range numbers[1:] {
		if number.Cmp(minValue) < 0 {
			minValue = number
		}
	}
	return contracts.NumberValue(quantize(minValue))
}

var calculateMax = func(arguments []contracts.Value) contracts.Value {
	numbers, errValue := numericArguments(arguments)
	if errValue != nil {
		return *errValue
	}

	maxValue := numbers[0]
	for _, number := range numbers[1:] {
		if number.Cmp(maxValue) > 0 {
			maxValue = number
		}
	}
	return contracts.NumberValue(quantize(maxValue))
}

var calculateAvg = func(arguments []contracts.Value) contracts.Value {
	numbers, errValue := numericArguments(arguments)
	if errValue != nil {
		return *errValue
	}

	total := decimal.Zero
	for _, number := range numbers {
		total = total.Add(number)
	}
	return contracts.NumberValue(quantize(total.Div(decimal.New(int64(len(numbers)), 0))))
}

// numericArguments coerces every argument to a number; at least one argument
// is required.
func numericArguments(arguments []contracts.Value) ([]decimal.Decimal, *contracts.Value) {
	valueError := contracts.ErrorValue(contracts.ErrorCodeValue)
	if len(arguments) == 0 {
		return nil, &valueError
	}

	numbers := make([]decimal.Decimal, len(arguments))
	for index, argument := range arguments {
		number, ok := coerceToNumber(argument)
		if !ok {
			return nil, &valueError
		}
		numbers[index] = number
	}
	return numbers, nil
}

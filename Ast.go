package main

import "github.com/shopspring/decimal"

// Expression is a node of a parsed formula tree.
type Expression interface {
	expressionNode()
}

type NumberLiteral struct {
	Value decimal.Decimal
}

type StringLiteral struct {
	Value string
}

type BooleanLiteral struct {
	Value bool
}

// CellReference holds a canonical A1-style cell id.
type CellReference struct {
	CellId string
}

// UnaryExpression is numeric negation.
type UnaryExpression struct {
	Operand Expression
}

type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

type FunctionCall struct {
	Name      string
	Arguments []Expression
}

func (*NumberLiteral) expressionNode()    {}
func (*StringLiteral) expressionNode()    {}
func (*BooleanLiteral) expressionNode()   {}
func (*CellReference) expressionNode()    {}
func (*UnaryExpression) expressionNode()  {}
func (*BinaryExpression) expressionNode() {}
func (*FunctionCall) expressionNode()     {}

// collectReferences walks the tree and appends distinct cell references in
// order of first appearance.
func collectReferences(expression Expression, seen map[string]bool, ordered *[]string) {
	switch node := expression.(type) {
	case *CellReference:
		if !seen[node.CellId] {
			seen[node.CellId] = true
			*ordered = append(*ordered, node.CellId)
		}
	case *UnaryExpression:
		collectReferences(node.Operand, seen, ordered)
	case *BinaryExpression:
		collectReferences(node.Left, seen, ordered)
		collectReferences(node.Right, seen, ordered)
	case *FunctionCall:
		for _, argument := range node.Arguments {
			collectReferences(argument, seen, ordered)
		}
	}
}

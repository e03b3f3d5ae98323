package contracts

// CellSnapshot is a read-only view of computed cell values at evaluation time.
// It returns nil for cells that have no materialized value; the evaluator
// resolves those to the number 0 (lenient reference policy).
type CellSnapshot func(cellId string) *Value

type FormulaEngine interface {
	IsFormula(rawInput string) bool

	// Evaluate turns a raw input into its computed value. Non-formula input
	// is classified as a literal (numeric parse first, text fallback).
	// Failures surface as error values, never as Go errors.
	Evaluate(rawInput string, snapshot CellSnapshot) Value

	/**
	 * References extracts the distinct cell references read by a formula, in
	 * order of first appearance. For `=A1*B1+A1` it returns ["A1", "B1"].
	 * Non-formula input has no references.
	 */
	References(rawInput string) []string
}

package contracts

import "go.etcd.io/bbolt"

type CellDependencyGraph interface {
	// SetReadsFrom
	/**
	 * Replaces the active outgoing edges of a formula cell.
	 * For formula `C1 = A1 + B1`:
	 *   SetReadsFrom(tx, sheetId, "C1", []string{"A1", "B1"})
	 * Edges that are no longer implied by the current formula are removed;
	 * a non-formula cell passes an empty list and keeps no edges.
	 */
	SetReadsFrom(tx *bbolt.Tx, sheetId []byte, formulaCellId string, readsFromCellIds []string) error

	// GetDependants
	/**
	 * Returns the transitive dependants of a cell: every cell whose formula
	 * reads it, directly or through other formulas.
	 * For `C1 = A1 + B1` and `D1 = C1 * 2`, GetDependants("A1") returns
	 * ["C1", "D1"].
	 *
	 * Edges are stored as prefixed keys in a bbolt B+tree, so the direct
	 * dependants of a cell are a single O(log n) prefix scan.
	 */
	GetDependants(tx *bbolt.Tx, sheetId []byte, cellId string) []string
}

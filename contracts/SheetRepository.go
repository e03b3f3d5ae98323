package contracts

import "errors"

type SheetRepository interface {
	// BatchSetCells applies an ordered list of set operations as one
	// transaction and recomputes every affected cell. The returned list
	// contains the edited cells followed by their recomputed dependants.
	BatchSetCells(sheetId string, operations []SetOperation, autoExpand bool) ([]*Cell, error)

	GetCell(sheetId string, cellId string) (*Cell, error)
	GetCellList(sheetId string) (*CellList, error)

	// GetDependents returns the transitive dependants of a cell, i.e. every
	// cell whose computed value would change if this cell changed.
	GetDependents(sheetId string, cellId string) ([]string, error)
}

var SheetNotFoundError = errors.New("sheet not found")

package main

import "campaignSheets/contracts"

// NewCellSnapshotChain looks a cell up in the first snapshot and falls back
// to the second. The recalculation pass uses it to overlay in-batch results
// on top of persisted values.
func NewCellSnapshotChain(first contracts.CellSnapshot, second contracts.CellSnapshot) contracts.CellSnapshot {
	if second == nil {
		return first
	}

	if first == nil {
		return second
	}

	return func(cellId string) *contracts.Value {
		if value := first(cellId); value != nil {
			return value
		}
		return second(cellId)
	}
}

package main

import "campaignSheets/contracts"

// NewWorkingSetSnapshot exposes the values already computed in the current
// batch as a snapshot. The map may keep growing after the snapshot is made.
func NewWorkingSetSnapshot(workingSet map[string]contracts.Value) contracts.CellSnapshot {
	return func(cellId string) *contracts.Value {
		if value, ok := workingSet[cellId]; ok {
			return &value
		}
		return nil
	}
}

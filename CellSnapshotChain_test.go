package main

import (
	"campaignSheets/contracts"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNewCellSnapshotChain(t *testing.T) {
	first := NewWorkingSetSnapshot(map[string]contracts.Value{
		"A1": contracts.TextValue("from-first"),
	})
	second := NewWorkingSetSnapshot(map[string]contracts.Value{
		"A1": contracts.TextValue("shadowed"),
		"B1": contracts.TextValue("from-second"),
	})

	t.Run("first snapshot wins", func(t *testing.T) {
		chain := NewCellSnapshotChain(first, second)

		value := chain("A1")
		assert.NotNil(t, value)
		assert.Equal(t, "from-first", value.Text)
	})

	t.Run("fallback to second", func(t *testing.T) {
		chain := NewCellSnapshotChain(first, second)

		value := chain("B1")
		assert.NotNil(t, value)
		assert.Equal(t, "from-second", value.Text)
	})

	t.Run("missing everywhere", func(t *testing.T) {
		chain := NewCellSnapshotChain(first, second)

		assert.Nil(t, chain("Z9"))
	})

	t.Run("nil snapshots collapse", func(t *testing.T) {
		chain := NewCellSnapshotChain(nil, second)
		value := chain("B1")
		assert.NotNil(t, value)
		assert.Equal(t, "from-second", value.Text)

		chain = NewCellSnapshotChain(first, nil)
		value = chain("A1")
		assert.NotNil(t, value)
		assert.Equal(t, "from-first", value.Text)
	})
}

func TestNewWorkingSetSnapshot(t *testing.T) {
	workingSet := map[string]contracts.Value{}
	snapshot := NewWorkingSetSnapshot(workingSet)

	assert.Nil(t, snapshot("A1"))

	// the snapshot sees values added after it was made
	workingSet["A1"] = contracts.TextValue("late")

	value := snapshot("A1")
	assert.NotNil(t, value)
	assert.Equal(t, "late", value.Text)
}

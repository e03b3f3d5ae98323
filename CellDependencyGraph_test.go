package main

import (
	"github.com/stretchr/testify/assert"
	"go.etcd.io/bbolt"
	"testing"
)

type TransactionCellDependencyGraphDecorator struct {
	t  *testing.T
	db *bbolt.DB
	CellDependencyGraph
}

func (graph *TransactionCellDependencyGraphDecorator) SetReadsFrom(sheetId []byte, formulaCellId string, readsFromCellIds []string) (returnErr error) {
	tx, err := graph.db.Begin(true)
	assert.NoError(graph.t, err)

	returnErr = graph.CellDependencyGraph.SetReadsFrom(tx, sheetId, formulaCellId, readsFromCellIds)
	assert.NoError(graph.t, tx.Commit())
	return
}

func (graph *TransactionCellDependencyGraphDecorator) GetDependants(sheetId []byte, cellId string) (returnList []string) {
	tx, err := graph.db.Begin(false)
	assert.NoError(graph.t, err)

	returnList = graph.CellDependencyGraph.GetDependants(tx, sheetId, cellId)
	assert.NoError(graph.t, tx.Rollback())
	return
}

func NewTransactionCellDependencyGraphDecorator(t *testing.T, db *bbolt.DB) *TransactionCellDependencyGraphDecorator {
	return &TransactionCellDependencyGraphDecorator{t, db, CellDependencyGraph{}}
}

func TestCellDependencyGraph_GetDependants(t *testing.T) {
	db, closeDb := _createTmpDb()
	defer closeDb()

	t.Run("single-level-deep", func(t *testing.T) {
		graph := NewTransactionCellDependencyGraphDecorator(t, db)
		sheetId := []byte(t.Name())

		err := graph.SetReadsFrom(sheetId, "C1", []string{"A1", "B1"})
		assert.NoError(t, err)

		assert.Empty(t, graph.GetDependants(sheetId, "C1"))
		assert.Empty(t, graph.GetDependants(sheetId, "Z9"))

		assert.Equal(t, []string{"C1"}, graph.GetDependants(sheetId, "A1"))
		assert.Equal(t, []string{"C1"}, graph.GetDependants(sheetId, "B1"))
	})

	t.Run("edges follow the current formula", func(t *testing.T) {
		graph := NewTransactionCellDependencyGraphDecorator(t, db)
		sheetId := []byte(t.Name())

		err := graph.SetReadsFrom(sheetId, "C1", []string{"A1", "B1"})
		assert.NoError(t, err)

		err = graph.SetReadsFrom(sheetId, "C1", []string{"B1", "D1"})
		assert.NoError(t, err)

		assert.Empty(t, graph.GetDependants(sheetId, "A1"))
		assert.Equal(t, []string{"C1"}, graph.GetDependants(sheetId, "B1"))
		assert.Equal(t, []string{"C1"}, graph.GetDependants(sheetId, "D1"))

		err = graph.SetReadsFrom(sheetId, "C1", []string{})
		assert.NoError(t, err)

		assert.Empty(t, graph.GetDependants(sheetId, "B1"))
		assert.Empty(t, graph.GetDependants(sheetId, "D1"))
	})

	t.Run("transitive dependants", func(t *testing.T) {
		graph := NewTransactionCellDependencyGraphDecorator(t, db)
		sheetId := []byte(t.Name())

		err := graph.SetReadsFrom(sheetId, "B1", []string{"A1"})
		assert.NoError(t, err)

		err = graph.SetReadsFrom(sheetId, "C1", []string{"B1"})
		assert.NoError(t, err)

		assert.Equal(t, []string{"B1", "C1"}, graph.GetDependants(sheetId, "A1"))
	})

	t.Run("diamond yields each dependant once", func(t *testing.T) {
		graph := NewTransactionCellDependencyGraphDecorator(t, db)
		sheetId := []byte(t.Name())

		err := graph.SetReadsFrom(sheetId, "B1", []string{"A1"})
		assert.NoError(t, err)

		err = graph.SetReadsFrom(sheetId, "C1", []string{"A1", "B1"})
		assert.NoError(t, err)

		assert.Equal(t, []string{"B1", "C1"}, graph.GetDependants(sheetId, "A1"))
	})

	t.Run("circular-reference", func(t *testing.T) {
		graph := NewTransactionCellDependencyGraphDecorator(t, db)
		sheetId := []byte(t.Name())

		err := graph.SetReadsFrom(sheetId, "B1", []string{"A1"})
		assert.NoError(t, err)

		err = graph.SetReadsFrom(sheetId, "C1", []string{"B1"})
		assert.NoError(t, err)

		err = graph.SetReadsFrom(sheetId, "A1", []string{"C1"})
		assert.NoError(t, err)

		// the traversal terminates and the queried cell is not its own dependant
		assert.Equal(t, []string{"B1", "C1"}, graph.GetDependants(sheetId, "A1"))
	})

	t.Run("sheets are isolated", func(t *testing.T) {
		graph := NewTransactionCellDependencyGraphDecorator(t, db)

		err := graph.SetReadsFrom([]byte("sheet-one"), "B1", []string{"A1"})
		assert.NoError(t, err)

		assert.Empty(t, graph.GetDependants([]byte("sheet-two"), "A1"))
	})

	t.Run("error-empty-bucket", func(t *testing.T) {
		graph := NewTransactionCellDependencyGraphDecorator(t, db)

		err := graph.SetReadsFrom(nil, "B1", []string{"A1"})
		assert.Error(t, err)

		assert.Empty(t, graph.GetDependants(nil, "A1"))
	})

	t.Run("error-db-put", func(t *testing.T) {
		graph := NewTransactionCellDependencyGraphDecorator(t, db)
		sheetId := []byte(t.Name())
		bucketId := graph.makeBucketId(sheetId)

		err := db.Update(func(tx *bbolt.Tx) error {
			bucket, err := tx.CreateBucketIfNotExists(bucketId)
			if err != nil {
				return err
			}
			_, err = bucket.CreateBucket(graph.makeEdgeKey("B1", "A1"))
			return err
		})
		assert.NoError(t, err)

		err = graph.SetReadsFrom(sheetId, "B1", []string{"A1"})
		assert.Error(t, err)
	})
}

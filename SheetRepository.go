package main

import (
	"encoding/binary"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"campaignSheets/contracts"
)

// SheetRepository owns the persisted cells of every sheet. One batch of set
// operations is applied in a single bbolt update transaction: the edits, the
// dependency edge updates and the recalculation of every affected cell
// either all land or the call fails without visible changes.
type SheetRepository struct {
	db              *bbolt.DB
	engine          contracts.FormulaEngine
	serializer      contracts.CellSerializer
	dependencyGraph contracts.CellDependencyGraph
}

var metaBucketPrefix = [4]byte{'_', '_', 'm', '_'}

var metaRowsKey = []byte("rows")
var metaColumnsKey = []byte("cols")

func NewSheetRepository(db *bbolt.DB, engine contracts.FormulaEngine, serializer contracts.CellSerializer) *SheetRepository {
	return &SheetRepository{
		db:              db,
		engine:          engine,
		serializer:      serializer,
		dependencyGraph: &CellDependencyGraph{},
	}
}

type sheetBounds struct {
	rows    int
	columns int
}

func (b *sheetBounds) contains(row int, column int) bool {
	return row < b.rows && column < b.columns
}

func (b *sheetBounds) expandTo(row int, column int) {
	if row >= b.rows {
		b.rows = row + 1
	}
	if column >= b.columns {
		b.columns = column + 1
	}
}

func (s *SheetRepository) BatchSetCells(sheetId string, operations []contracts.SetOperation, autoExpand bool) (affected []*contracts.Cell, err error) {
	sheetId = strings.ToLower(sheetId)
	sheetIdByte := []byte(sheetId)

	err = s.db.Update(func(tx *bbolt.Tx) error {
		affected = nil

		bucket, txErr := tx.CreateBucketIfNotExists(sheetIdByte)
		if txErr != nil {
			return txErr
		}
		bounds := s.loadBounds(tx, sheetIdByte)

		editedOrder := make([]string, 0, len(operations))
		rawInputs := map[string]string{}

		for _, operation := range operations {
			if operation.Operation != contracts.OperationSet {
				return fmt.Errorf("%q: %w", operation.Operation, contracts.UnknownOperationError)
			}
			if operation.Row < 0 || operation.Column < 0 {
				return fmt.Errorf("row %d, column %d: %w", operation.Row, operation.Column, contracts.InvalidCellIdError)
			}

			if !bounds.contains(operation.Row, operation.Column) {
				if !autoExpand {
					return fmt.Errorf("row %d, column %d: %w", operation.Row, operation.Column, contracts.CellOutOfBoundsError)
				}
				bounds.expandTo(operation.Row, operation.Column)
			}

			cellId := CellName(operation.Row, operation.Column)
			references := s.engine.References(operation.RawInput)

			// referenced positions materialize before dependency extraction
			if autoExpand {
				for _, reference := range references {
					if row, column, refErr := ParseCellId(reference); refErr == nil {
						bounds.expandTo(row, column)
					}
				}
			}

			if txErr = s.dependencyGraph.SetReadsFrom(tx, sheetIdByte, cellId, references); txErr != nil {
				return txErr
			}

			if _, edited := rawInputs[cellId]; !edited {
				editedOrder = append(editedOrder, cellId)
			}
			rawInputs[cellId] = operation.RawInput
		}

		// recomputation set: the edited cells plus their transitive dependants
		recalcIds := make([]string, 0, len(editedOrder))
		inSet := map[string]bool{}
		for _, cellId := range editedOrder {
			inSet[cellId] = true
			recalcIds = append(recalcIds, cellId)
		}
		for _, cellId := range editedOrder {
			for _, dependantCellId := range s.dependencyGraph.GetDependants(tx, sheetIdByte, cellId) {
				if !inSet[dependantCellId] {
					inSet[dependantCellId] = true
					recalcIds = append(recalcIds, dependantCellId)
				}
			}
		}

		for _, cellId := range recalcIds {
			if _, edited := rawInputs[cellId]; edited {
				continue
			}
			record := bucket.Get([]byte(cellId))
			if record == nil {
				rawInputs[cellId] = ""
				continue
			}
			cell, unmarshalErr := s.serializer.Unmarshal(record)
			if unmarshalErr != nil {
				return unmarshalErr
			}
			rawInputs[cellId] = cell.RawInput
		}

		plan := PlanRecalculation(recalcIds, func(cellId string) []string {
			return s.engine.References(rawInputs[cellId])
		})

		workingSet := make(map[string]contracts.Value, len(recalcIds))
		snapshot := NewCellSnapshotChain(NewWorkingSetSnapshot(workingSet), s.makeStoredSnapshot(bucket))

		writeCell := func(cellId string, value contracts.Value) error {
			workingSet[cellId] = value
			cell, cellErr := s.makeCell(cellId, rawInputs[cellId], value)
			if cellErr != nil {
				return cellErr
			}
			affected = append(affected, cell)
			return bucket.Put([]byte(cellId), s.serializer.Marshal(cell))
		}

		for _, cellId := range plan.Order {
			if txErr = writeCell(cellId, s.engine.Evaluate(rawInputs[cellId], snapshot)); txErr != nil {
				return txErr
			}
		}
		for _, cellId := range plan.Cyclic {
			if txErr = writeCell(cellId, contracts.ErrorValue(contracts.ErrorCodeCircular)); txErr != nil {
				return txErr
			}
		}

		return s.saveBounds(tx, sheetIdByte, bounds)
	})

	if err != nil {
		return nil, err
	}
	return affected, nil
}

func (s *SheetRepository) GetCell(sheetId string, cellId string) (cell *contracts.Cell, err error) {
	sheetId = strings.ToLower(sheetId)
	canonicalCellId := CanonicalizeCellId(cellId)

	row, column, err := ParseCellId(canonicalCellId)
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		record := bucket.Get([]byte(canonicalCellId))
		if record == nil {
			return fmt.Errorf("%s: %w", canonicalCellId, contracts.CellNotFoundError)
		}

		cell, err = s.serializer.Unmarshal(record)
		if err != nil {
			return err
		}

		cell.CellId = canonicalCellId
		cell.Row = row
		cell.Column = column
		return nil
	})

	if err != nil {
		return nil, err
	}
	return cell, nil
}

func (s *SheetRepository) GetCellList(sheetId string) (*contracts.CellList, error) {
	sheetId = strings.ToLower(sheetId)

	cellList := contracts.CellList{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		cursor := bucket.Cursor()
		for key, record := cursor.First(); key != nil; key, record = cursor.Next() {
			cellId := string(key)
			cell, err := s.serializer.Unmarshal(record)
			if err != nil {
				continue
			}

			cell.CellId = cellId
			cell.Row, cell.Column, err = ParseCellId(cellId)
			if err != nil {
				continue
			}
			cellList[cellId] = cell
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &cellList, nil
}

func (s *SheetRepository) GetDependents(sheetId string, cellId string) (dependants []string, err error) {
	sheetId = strings.ToLower(sheetId)
	canonicalCellId := CanonicalizeCellId(cellId)

	if !IsCellId(canonicalCellId) {
		return nil, fmt.Errorf("%s: %w", cellId, contracts.InvalidCellIdError)
	}

	err = s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(sheetId)) == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		dependants = s.dependencyGraph.GetDependants(tx, []byte(sheetId), canonicalCellId)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return dependants, nil
}

func (s *SheetRepository) makeCell(cellId string, rawInput string, value contracts.Value) (*contracts.Cell, error) {
	row, column, err := ParseCellId(cellId)
	if err != nil {
		return nil, err
	}

	cell := &contracts.Cell{CellId: cellId, Row: row, Column: column, RawInput: rawInput}
	value.FillCell(cell)
	return cell, nil
}

func (s *SheetRepository) makeStoredSnapshot(bucket *bbolt.Bucket) contracts.CellSnapshot {
	return func(cellId string) *contracts.Value {
		record := bucket.Get([]byte(cellId))
		if record == nil {
			return nil
		}

		cell, err := s.serializer.Unmarshal(record)
		if err != nil {
			return nil
		}

		value := cell.ComputedValue()
		return &value
	}
}

func (s *SheetRepository) makeMetaBucketId(sheetId []byte) []byte {
	return append(metaBucketPrefix[:], sheetId...)
}

func (s *SheetRepository) loadBounds(tx *bbolt.Tx, sheetId []byte) sheetBounds {
	bounds := sheetBounds{}

	bucket := tx.Bucket(s.makeMetaBucketId(sheetId))
	if bucket == nil {
		return bounds
	}

	if data := bucket.Get(metaRowsKey); len(data) == 4 {
		bounds.rows = int(binary.LittleEndian.Uint32(data))
	}
	if data := bucket.Get(metaColumnsKey); len(data) == 4 {
		bounds.columns = int(binary.LittleEndian.Uint32(data))
	}
	return bounds
}

func (s *SheetRepository) saveBounds(tx *bbolt.Tx, sheetId []byte, bounds sheetBounds) error {
	bucket, err := tx.CreateBucketIfNotExists(s.makeMetaBucketId(sheetId))
	if err != nil {
		return err
	}

	if err = bucket.Put(metaRowsKey, binary.LittleEndian.AppendUint32(nil, uint32(bounds.rows))); err != nil {
		return err
	}
	return bucket.Put(metaColumnsKey, binary.LittleEndian.AppendUint32(nil, uint32(bounds.columns)))
}

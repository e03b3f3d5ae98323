package main

import (
	"bytes"

	"go.etcd.io/bbolt"
)

// CellDependencyGraph stores the active dependency edges of a sheet in its
// own bbolt bucket. Two key shapes live there:
//
//	readsFrom\0formulaCell -> ""          (reverse index, one key per edge)
//	\0\0formulaCell        -> a\0b\0c     (forward list, used for diffing)
//
// The reverse index makes "who reads cell X" a single prefix scan; the
// forward list tells which stale edges to drop when a formula changes.
// An edge that is no longer implied by the current formula is deleted from
// the bucket, so the active edge set always equals the reference set of the
// cell's current formula.
type CellDependencyGraph struct{}

const Delimiter = byte(0x00)

var dependencyBucketPrefix = [4]byte{'_', '_', 'd', '_'}

func (g *CellDependencyGraph) SetReadsFrom(tx *bbolt.Tx, sheetId []byte, formulaCellId string, readsFromCellIds []string) (err error) {
	bucket, err := tx.CreateBucketIfNotExists(g.makeBucketId(sheetId))
	if err != nil {
		return err
	}

	forwardListKey := g.makeForwardListKey(formulaCellId)

	staleEdges := map[string]bool{}
	if previous := bucket.Get(forwardListKey); previous != nil {
		for _, readsFromCellId := range bytes.Split(previous, []byte{Delimiter}) {
			staleEdges[string(readsFromCellId)] = true
		}
	}

	addedEdges := false
	for _, readsFromCellId := range readsFromCellIds {
		if staleEdges[readsFromCellId] {
			// edge already active, keep it
			delete(staleEdges, readsFromCellId)
			continue
		}
		addedEdges = true
		if err = bucket.Put(g.makeEdgeKey(formulaCellId, readsFromCellId), []byte{}); err != nil {
			return err
		}
	}

	if !addedEdges && len(staleEdges) == 0 {
		return nil
	}

	for staleReadsFromCellId := range staleEdges {
		if err = bucket.Delete(g.makeEdgeKey(formulaCellId, staleReadsFromCellId)); err != nil {
			return err
		}
	}

	if len(readsFromCellIds) == 0 {
		return bucket.Delete(forwardListKey)
	}

	forwardList := make([][]byte, 0, len(readsFromCellIds))
	for _, readsFromCellId := range readsFromCellIds {
		forwardList = append(forwardList, []byte(readsFromCellId))
	}
	return bucket.Put(forwardListKey, bytes.Join(forwardList, []byte{Delimiter}))
}

func (g *CellDependencyGraph) GetDependants(tx *bbolt.Tx, sheetId []byte, cellId string) []string {
	bucket := tx.Bucket(g.makeBucketId(sheetId))
	if bucket == nil {
		return []string{}
	}

	return g.fetchDependantsRecursive(bucket, cellId, map[string]bool{
		cellId: true,
	})
}

// fetchDependantsRecursive returns each reachable dependant exactly once,
// whatever the number of paths leading to it.
func (g *CellDependencyGraph) fetchDependantsRecursive(bucket *bbolt.Bucket, cellId string, visited map[string]bool) []string {
	dependants := make([]string, 0, 4)

	for _, dependantCellId := range g.fetchDirectDependants(bucket, cellId) {
		if visited[dependantCellId] {
			continue
		}
		visited[dependantCellId] = true

		dependants = append(dependants, dependantCellId)
		dependants = append(dependants, g.fetchDependantsRecursive(bucket, dependantCellId, visited)...)
	}

	return dependants
}

func (g *CellDependencyGraph) fetchDirectDependants(bucket *bbolt.Bucket, cellId string) []string {
	dependants := make([]string, 0, 4)

	prefix := g.makeReadsFromPrefix(cellId)
	cursor := bucket.Cursor()
	for key, _ := cursor.Seek(prefix); key != nil && bytes.HasPrefix(key, prefix); key, _ = cursor.Next() {
		dependants = append(dependants, string(key[len(prefix):]))
	}

	return dependants
}

func (g *CellDependencyGraph) makeBucketId(sheetId []byte) []byte {
	if len(sheetId) == 0 {
		return nil
	}
	return append(dependencyBucketPrefix[:], sheetId...)
}

func (g *CellDependencyGraph) makeForwardListKey(formulaCellId string) []byte {
	return append([]byte{Delimiter, Delimiter}, []byte(formulaCellId)...)
}

func (g *CellDependencyGraph) makeReadsFromPrefix(readsFromCellId string) []byte {
	return append([]byte(readsFromCellId), Delimiter)
}

func (g *CellDependencyGraph) makeEdgeKey(formulaCellId string, readsFromCellId string) []byte {
	return append(g.makeReadsFromPrefix(readsFromCellId), []byte(formulaCellId)...)
}

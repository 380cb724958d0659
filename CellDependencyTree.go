package main

import (
	"bytes"

	"go.alis.build/utils/sets"
	"go.etcd.io/bbolt"
)

type CellDependencyTree struct{}

const Delimiter = byte(0x00)

var bucketPrefix = [4]byte{'_', '_', 'd', '_'}

func (t *CellDependencyTree) SetDependsOn(tx *bbolt.Tx, sheetId []byte, dependantCellId string, dependingOnCellIds []string) (err error) {
	bucket, err := tx.CreateBucketIfNotExists(t.makeBucketId(sheetId))
	if err != nil {
		return err
	}

	listKey := t.makeDependingListKey(dependantCellId)

	stale := sets.NewSet[string]()
	if previous := bucket.Get(listKey); previous != nil {
		for _, previousCellId := range bytes.Split(previous, []byte{Delimiter}) {
			stale.Add(string(previousCellId))
		}
	}

	current := sets.NewSet[string]()
	for _, dependingOnCellId := range dependingOnCellIds {
		if dependingOnCellId == "" || current.Contains(dependingOnCellId) {
			continue
		}
		current.Add(dependingOnCellId)

		if stale.Contains(dependingOnCellId) {
			// edge already stored
			stale.Remove(dependingOnCellId)
			continue
		}

		if err = bucket.Put(t.makeDependantKey(dependantCellId, dependingOnCellId), []byte{}); err != nil {
			return err
		}
	}

	for _, staleCellId := range stale.Values() {
		if err = bucket.Delete(t.makeDependantKey(dependantCellId, staleCellId)); err != nil {
			return err
		}
	}

	if current.Len() == 0 {
		return bucket.Delete(listKey)
	}

	list := make([][]byte, 0, current.Len())
	for _, dependingOnCellId := range dependingOnCellIds {
		if current.Contains(dependingOnCellId) {
			list = append(list, []byte(dependingOnCellId))
			current.Remove(dependingOnCellId)
		}
	}
	return bucket.Put(listKey, bytes.Join(list, []byte{Delimiter}))
}

func (t *CellDependencyTree) GetDependants(tx *bbolt.Tx, sheetId []byte, dependingOnCellId string) []string {
	bucket := tx.Bucket(t.makeBucketId(sheetId))
	if bucket == nil {
		return []string{}
	}

	return t.fetchDependantsRecursive(bucket, dependingOnCellId, sets.NewSet(dependingOnCellId))
}

func (t *CellDependencyTree) makeBucketId(sheetId []byte) []byte {
	if len(sheetId) == 0 {
		return nil
	}

	return append(bucketPrefix[:], sheetId...)
}

// fetchDependantsRecursive walks dependants depth first; cycles stop at already fetched cells
func (t *CellDependencyTree) fetchDependantsRecursive(bucket *bbolt.Bucket, dependingOnCellId string, alreadyFetched *sets.Set[string]) []string {
	dependants := make([]string, 0)

	for _, dependantCellId := range t.fetchCellDependants(bucket, dependingOnCellId) {
		if alreadyFetched.Contains(dependantCellId) {
			continue
		}
		alreadyFetched.Add(dependantCellId)

		dependants = append(dependants, dependantCellId)
		dependants = append(dependants, t.fetchDependantsRecursive(bucket, dependantCellId, alreadyFetched)...)
	}

	return dependants
}

func (t *CellDependencyTree) fetchCellDependants(bucket *bbolt.Bucket, dependingOnCellId string) []string {
	dependantCellIds := make([]string, 0, 5)
	c := bucket.Cursor()

	prefix := t.makeDependingOnPrefixKey(dependingOnCellId)
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		dependantCellIds = append(dependantCellIds, string(k[len(prefix):]))
	}

	return dependantCellIds
}

// list keys start with two delimiters, so they never share a prefix with an address
func (t *CellDependencyTree) makeDependingListKey(dependantCellId string) []byte {
	return append([]byte{Delimiter, Delimiter}, dependantCellId...)
}

func (t *CellDependencyTree) makeDependingOnPrefixKey(dependingOnCellId string) []byte {
	return append([]byte(dependingOnCellId), Delimiter)
}

func (t *CellDependencyTree) makeDependantKey(dependantCellId string, dependingOnCellId string) []byte {
	return append(t.makeDependingOnPrefixKey(dependingOnCellId), dependantCellId...)
}

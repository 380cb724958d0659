package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.alis.build/alog"
	"go.etcd.io/bbolt"

	"smartSheet/contracts"
)

type SheetRepository struct {
	db                *bbolt.DB
	engine            contracts.FormulaEngine
	recalculator      contracts.GridRecalculator
	serializer        contracts.CellSerializer
	canonicalizer     contracts.Canonicalizer
	dependencyTree    contracts.CellDependencyTree
	webhookDispatcher contracts.WebhookDispatcher
}

var errorNoChanges = fmt.Errorf("no changes")

// reserved for internal buckets such as the dependency tree
const reservedSheetPrefix = "__"

func NewSheetRepository(
	db *bbolt.DB, engine contracts.FormulaEngine, recalculator contracts.GridRecalculator,
	serializer contracts.CellSerializer, canonicalizer contracts.Canonicalizer,
	webhookDispatcher contracts.WebhookDispatcher,
) *SheetRepository {
	return &SheetRepository{
		db:                db,
		engine:            engine,
		recalculator:      recalculator,
		serializer:        serializer,
		canonicalizer:     canonicalizer,
		dependencyTree:    &CellDependencyTree{},
		webhookDispatcher: webhookDispatcher,
	}
}

func (s *SheetRepository) SetCell(sheetId string, cellId string, rawValue string) (cell *contracts.Cell, err error) {
	cell = &contracts.Cell{RawValue: rawValue}

	sheetKey, address, err := s.canonicalize(sheetId, cellId)
	if err != nil {
		return
	}

	var updates []contracts.CellUpdate

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sheetKey)
		if err != nil {
			return err
		}

		previous, err := s.readSheet(bucket)
		if err != nil {
			return err
		}

		edited := previous.Clone()
		editedCell, exists := edited[address]
		rawChanged := !exists || editedCell.RawValue != rawValue
		editedCell.RawValue = rawValue
		edited[address] = editedCell

		// re-entering the same value still recalculates, so long chains advance another two passes
		recalculated := s.recalculator.RecalculateGrid(edited)
		*cell = recalculated[address]

		written, err := s.writeChanges(bucket, previous, recalculated)
		if err != nil {
			return err
		}

		if !rawChanged {
			if written == 0 {
				return errorNoChanges
			}
			updates = s.collectUpdates(string(sheetKey), recalculated.Addresses(), previous, recalculated, false)
			return nil
		}

		if err = s.dependencyTree.SetDependsOn(tx, sheetKey, address, s.engine.ExtractReferences(rawValue)); err != nil {
			return err
		}

		dependants := s.dependencyTree.GetDependants(tx, sheetKey, address)
		updates = s.collectUpdates(string(sheetKey), append([]string{address}, dependants...), previous, recalculated, true)

		alog.Debugf(context.Background(), "sheet %s: %s set, %d dependants, %d cells recalculated", sheetKey, address, len(dependants), len(recalculated))
		return nil
	})

	if errors.Is(err, errorNoChanges) {
		return cell, nil
	}

	if err == nil {
		s.notify(string(sheetKey), updates)
	}

	return
}

func (s *SheetRepository) GetCell(sheetId string, cellId string) (cell *contracts.Cell, err error) {
	sheetKey, address, err := s.canonicalize(sheetId, cellId)
	if err != nil {
		return nil, err
	}

	cell = &contracts.Cell{}
	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sheetKey)
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetKey, contracts.SheetNotFoundError)
		}

		byteValue := bucket.Get([]byte(address))
		if byteValue == nil {
			return fmt.Errorf("%s: %w", address, contracts.CellNotFoundError)
		}

		_, *cell, err = s.serializer.Unmarshal(byteValue)
		return err
	})

	if err != nil {
		return nil, err
	}
	return cell, nil
}

func (s *SheetRepository) GetSheet(sheetId string) (sheet contracts.Sheet, err error) {
	sheetKey, err := s.canonicalizeSheetId(sheetId)
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sheetKey)
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetKey, contracts.SheetNotFoundError)
		}

		sheet, err = s.readSheet(bucket)
		return err
	})

	return
}

// LoadSheet writes whole cells (computed values included, they are the pre-load snapshot)
// over the stored sheet, then recalculates it
func (s *SheetRepository) LoadSheet(sheetId string, cells contracts.Sheet) (sheet contracts.Sheet, err error) {
	sheetKey, err := s.canonicalizeSheetId(sheetId)
	if err != nil {
		return nil, err
	}

	canonicalCells := make(contracts.Sheet, len(cells))
	for cellId, cell := range cells {
		address, err := s.canonicalizer.CanonicalizeCellId(cellId)
		if err != nil {
			return nil, err
		}
		canonicalCells[address] = cell
	}

	var updates []contracts.CellUpdate

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sheetKey)
		if err != nil {
			return err
		}

		previous, err := s.readSheet(bucket)
		if err != nil {
			return err
		}

		merged := previous.Clone()
		for address, cell := range canonicalCells {
			merged[address] = cell
		}

		sheet = s.recalculator.RecalculateGrid(merged)

		if _, err = s.writeChanges(bucket, previous, sheet); err != nil {
			return err
		}

		for _, address := range canonicalCells.Addresses() {
			err = s.dependencyTree.SetDependsOn(tx, sheetKey, address, s.engine.ExtractReferences(canonicalCells[address].RawValue))
			if err != nil {
				return err
			}
		}

		updates = s.collectUpdates(string(sheetKey), sheet.Addresses(), previous, sheet, false)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.notify(string(sheetKey), updates)
	return sheet, nil
}

func (s *SheetRepository) GetDependants(sheetId string, cellId string) (dependants []string, err error) {
	sheetKey, address, err := s.canonicalize(sheetId, cellId)
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(sheetKey) == nil {
			return fmt.Errorf("%s: %w", sheetKey, contracts.SheetNotFoundError)
		}

		dependants = s.dependencyTree.GetDependants(tx, sheetKey, address)
		return nil
	})

	return
}

func (s *SheetRepository) canonicalize(sheetId string, cellId string) ([]byte, string, error) {
	sheetKey, err := s.canonicalizeSheetId(sheetId)
	if err != nil {
		return nil, "", err
	}

	address, err := s.canonicalizer.CanonicalizeCellId(cellId)
	if err != nil {
		return nil, "", err
	}

	return sheetKey, address, nil
}

func (s *SheetRepository) canonicalizeSheetId(sheetId string) ([]byte, error) {
	canonicalSheetId := s.canonicalizer.CanonicalizeSheetId(sheetId)
	if canonicalSheetId == "" || strings.HasPrefix(canonicalSheetId, reservedSheetPrefix) {
		return nil, fmt.Errorf("`%s`: %w", sheetId, contracts.InvalidSheetIdError)
	}

	return []byte(canonicalSheetId), nil
}

func (s *SheetRepository) readSheet(bucket *bbolt.Bucket) (contracts.Sheet, error) {
	sheet := contracts.Sheet{}

	err := bucket.ForEach(func(k, v []byte) error {
		// nested bucket
		if v == nil {
			return nil
		}

		address, cell, err := s.serializer.Unmarshal(v)
		if err != nil {
			return fmt.Errorf("cell %s: %w", string(k), err)
		}

		sheet[address] = cell
		return nil
	})

	return sheet, err
}

// writeChanges stores only the cells whose raw value, computed value or style changed
func (s *SheetRepository) writeChanges(bucket *bbolt.Bucket, previous contracts.Sheet, next contracts.Sheet) (written int, err error) {
	for _, address := range next.Addresses() {
		cell := next[address]
		if previousCell, ok := previous[address]; ok && cellsEqual(previousCell, cell) {
			continue
		}

		if err = bucket.Put([]byte(address), s.serializer.Marshal(address, cell)); err != nil {
			return
		}
		written++
	}

	return
}

// collectUpdates keeps the addresses whose computed value changed; force keeps the first one regardless
func (s *SheetRepository) collectUpdates(sheetId string, addresses []string, previous contracts.Sheet, next contracts.Sheet, force bool) []contracts.CellUpdate {
	updates := make([]contracts.CellUpdate, 0, len(addresses))

	for index, address := range addresses {
		cell, ok := next[address]
		if !ok {
			continue
		}

		if !(force && index == 0) && cell.ComputedValue.Equal(previous[address].ComputedValue) {
			continue
		}

		updates = append(updates, contracts.CellUpdate{SheetId: sheetId, Address: address, Cell: cell})
	}

	return updates
}

func (s *SheetRepository) notify(sheetId string, updates []contracts.CellUpdate) {
	if s.webhookDispatcher == nil || len(updates) == 0 {
		return
	}

	s.webhookDispatcher.Notify(sheetId, updates)
}

func cellsEqual(a contracts.Cell, b contracts.Cell) bool {
	if a.RawValue != b.RawValue || !a.ComputedValue.Equal(b.ComputedValue) {
		return false
	}

	if a.Style == nil || b.Style == nil {
		return a.Style == b.Style
	}
	return *a.Style == *b.Style
}

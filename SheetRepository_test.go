package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.etcd.io/bbolt"

	"smartSheet/contracts"
	"smartSheet/mocks"
)

func _newSheetRepository(db *bbolt.DB, webhookDispatcher contracts.WebhookDispatcher) *SheetRepository {
	codec := NewAddressCodec()
	engine := NewFormulaEngine(codec, NewReferenceResolver(codec), NewExpressionEvaluator())

	return NewSheetRepository(
		db, engine, NewGridRecalculator(engine),
		NewCellBinarySerializer(), NewCanonicalizer(codec), webhookDispatcher,
	)
}

func _expectedUpdatesMatcher(expectedUpdates ...contracts.CellUpdate) interface{} {
	return mock.MatchedBy(func(updates []contracts.CellUpdate) bool {
		if !assert.ObjectsAreEqual(expectedUpdates, updates) {
			fmt.Fprintf(os.Stderr, "updates: %+v, expected: %+v\n", updates, expectedUpdates)
			return false
		}
		return true
	})
}

func TestSheetRepository_SetCell(t *testing.T) {
	sheetId := "Sheet1"
	canonicalSheetId := "sheet1"

	t.Run("success", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		t.Run("first_write", func(t *testing.T) {
			webhookDispatcher := mocks.NewWebhookDispatcher(t)
			sheetRepository := _newSheetRepository(db, webhookDispatcher)

			expectCell := contracts.Cell{RawValue: "10", ComputedValue: contracts.NumberValue(10)}
			webhookDispatcher.On("Notify", canonicalSheetId, _expectedUpdatesMatcher(
				contracts.CellUpdate{SheetId: canonicalSheetId, Address: "A1", Cell: expectCell},
			)).Return().Once()

			cell, err := sheetRepository.SetCell(sheetId, "a1", "10")

			assert.NoError(t, err)
			assert.Equal(t, &expectCell, cell)
		})

		t.Run("repeat_write", func(t *testing.T) {
			// no Notify expected
			webhookDispatcher := mocks.NewWebhookDispatcher(t)
			sheetRepository := _newSheetRepository(db, webhookDispatcher)

			cell, err := sheetRepository.SetCell(sheetId, "A1", "10")

			assert.NoError(t, err)
			assert.Equal(t, "10", cell.RawValue)
			assert.Equal(t, contracts.NumberValue(10), cell.ComputedValue)
		})

		t.Run("persisted", func(t *testing.T) {
			cell, err := _newSheetRepository(db, nil).GetCell(sheetId, "A1")

			assert.NoError(t, err)
			assert.Equal(t, contracts.NumberValue(10), cell.ComputedValue)
		})
	})

	t.Run("success_with_dependants", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		webhookDispatcher := mocks.NewWebhookDispatcher(t)
		sheetRepository := _newSheetRepository(db, webhookDispatcher)

		webhookDispatcher.On("Notify", canonicalSheetId, mock.Anything).Return().Twice()

		_, err := sheetRepository.SetCell(sheetId, "A1", "10")
		assert.NoError(t, err)

		cell, err := sheetRepository.SetCell(sheetId, "B1", "=A1*2")
		assert.NoError(t, err)
		assert.Equal(t, contracts.NumberValue(20), cell.ComputedValue)

		webhookDispatcher.On("Notify", canonicalSheetId, _expectedUpdatesMatcher(
			contracts.CellUpdate{
				SheetId: canonicalSheetId,
				Address: "A1",
				Cell:    contracts.Cell{RawValue: "20", ComputedValue: contracts.NumberValue(20)},
			},
			contracts.CellUpdate{
				SheetId: canonicalSheetId,
				Address: "B1",
				Cell:    contracts.Cell{RawValue: "=A1*2", ComputedValue: contracts.NumberValue(40)},
			},
		)).Return().Once()

		cell, err = sheetRepository.SetCell(sheetId, "A1", "20")
		assert.NoError(t, err)
		assert.Equal(t, contracts.NumberValue(20), cell.ComputedValue)

		dependant, err := sheetRepository.GetCell(sheetId, "B1")
		assert.NoError(t, err)
		assert.Equal(t, contracts.NumberValue(40), dependant.ComputedValue)

		dependants, err := sheetRepository.GetDependants(sheetId, "A1")
		assert.NoError(t, err)
		assert.Equal(t, []string{"B1"}, dependants)
	})

	t.Run("unchanged_dependant_not_notified", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		sheetRepository := _newSheetRepository(db, nil)
		_, err := sheetRepository.SetCell(sheetId, "A1", "Label")
		assert.NoError(t, err)
		_, err = sheetRepository.SetCell(sheetId, "B1", "=A1+1")
		assert.NoError(t, err)

		webhookDispatcher := mocks.NewWebhookDispatcher(t)
		sheetRepository.webhookDispatcher = webhookDispatcher
		webhookDispatcher.On("Notify", canonicalSheetId, _expectedUpdatesMatcher(
			contracts.CellUpdate{
				SheetId: canonicalSheetId,
				Address: "A1",
				Cell:    contracts.Cell{RawValue: "Other label", ComputedValue: contracts.TextValue("Other label")},
			},
		)).Return().Once()

		_, err = sheetRepository.SetCell(sheetId, "A1", "Other label")
		assert.NoError(t, err)
	})

	t.Run("repeat_write_advances_long_chain", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		sheetRepository := _newSheetRepository(db, nil)
		for _, cell := range [][2]string{{"B1", "=A1"}, {"C1", "=B1"}, {"D1", "=C1"}, {"A1", "1"}} {
			_, err := sheetRepository.SetCell(sheetId, cell[0], cell[1])
			assert.NoError(t, err)
		}

		// two passes reach one hop past the edit
		last, err := sheetRepository.GetCell(sheetId, "D1")
		assert.NoError(t, err)
		assert.Equal(t, contracts.NumberValue(0), last.ComputedValue)

		webhookDispatcher := mocks.NewWebhookDispatcher(t)
		sheetRepository.webhookDispatcher = webhookDispatcher
		webhookDispatcher.On("Notify", canonicalSheetId, _expectedUpdatesMatcher(
			contracts.CellUpdate{
				SheetId: canonicalSheetId,
				Address: "C1",
				Cell:    contracts.Cell{RawValue: "=B1", ComputedValue: contracts.NumberValue(1)},
			},
			contracts.CellUpdate{
				SheetId: canonicalSheetId,
				Address: "D1",
				Cell:    contracts.Cell{RawValue: "=C1", ComputedValue: contracts.NumberValue(1)},
			},
		)).Return().Once()

		cell, err := sheetRepository.SetCell(sheetId, "A1", "1")
		assert.NoError(t, err)
		assert.Equal(t, contracts.NumberValue(1), cell.ComputedValue)

		last, err = sheetRepository.GetCell(sheetId, "D1")
		assert.NoError(t, err)
		assert.Equal(t, contracts.NumberValue(1), last.ComputedValue)

		dependants, err := sheetRepository.GetDependants(sheetId, "A1")
		assert.NoError(t, err)
		assert.Equal(t, []string{"B1", "C1", "D1"}, dependants)
	})

	t.Run("formula_error_is_a_value", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		cell, err := _newSheetRepository(db, nil).SetCell(sheetId, "A1", "=1/0")

		assert.NoError(t, err)
		assert.Equal(t, contracts.ErrorValue(contracts.EvaluationErrorMarker), cell.ComputedValue)
	})

	t.Run("keeps_style", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		sheetRepository := _newSheetRepository(db, nil)
		style := &contracts.CellStyle{Bold: true, BackgroundColor: "#e5e7eb"}

		_, err := sheetRepository.LoadSheet(sheetId, contracts.Sheet{"A5": {RawValue: "TOTAL", Style: style}})
		assert.NoError(t, err)

		cell, err := sheetRepository.SetCell(sheetId, "A5", "Grand total")
		assert.NoError(t, err)
		assert.Equal(t, style, cell.Style)
	})

	t.Run("invalid_sheet_id", func(t *testing.T) {
		sheetRepository := &SheetRepository{canonicalizer: NewCanonicalizer(NewAddressCodec())}

		for _, invalidSheetId := range []string{"", "  ", "__d_sheet1", "__other"} {
			cell, err := sheetRepository.SetCell(invalidSheetId, "A1", "value")

			assert.ErrorIs(t, err, contracts.InvalidSheetIdError)
			assert.NotNil(t, cell)
			assert.Equal(t, "value", cell.RawValue)
		}
	})

	t.Run("invalid_cell_id", func(t *testing.T) {
		sheetRepository := &SheetRepository{canonicalizer: NewCanonicalizer(NewAddressCodec())}

		for _, cellId := range []string{"", "A0", "1A", "A1+A1", "A 1"} {
			cell, err := sheetRepository.SetCell(sheetId, cellId, "value")

			assert.ErrorIs(t, err, contracts.InvalidAddressError)
			assert.NotNil(t, cell)
			assert.Equal(t, "value", cell.RawValue)
		}
	})

	t.Run("set_depends_on_error", func(t *testing.T) {
		isolatedDb, closeIsolatedDB := _createTmpDb()
		defer closeIsolatedDB()

		expectedErr := errors.New("set-depends-on-error")

		tree := mocks.NewCellDependencyTree(t)
		tree.On("SetDependsOn", mock.Anything, []byte(canonicalSheetId), "B1", []string{"A1"}).Return(expectedErr)

		// no Notify expected
		sheetRepository := _newSheetRepository(isolatedDb, mocks.NewWebhookDispatcher(t))
		sheetRepository.dependencyTree = tree

		cell, err := sheetRepository.SetCell(sheetId, "B1", "=A1")

		assert.Equal(t, expectedErr, err)
		assert.NotNil(t, cell)
		assert.Equal(t, "=A1", cell.RawValue)

		_, err = sheetRepository.GetCell(sheetId, "B1")
		assert.ErrorIs(t, err, contracts.SheetNotFoundError)
	})

	t.Run("save_value_error", func(t *testing.T) {
		dbWithError, closeWithError := _createTmpDb()
		defer closeWithError()

		_ = dbWithError.Update(func(tx *bbolt.Tx) error {
			bucket, err := tx.CreateBucket([]byte(canonicalSheetId))
			assert.NoError(t, err)

			_, err = bucket.CreateBucket([]byte("A1"))
			assert.NoError(t, err)

			return nil
		})

		cell, err := _newSheetRepository(dbWithError, mocks.NewWebhookDispatcher(t)).SetCell(sheetId, "A1", "value")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "incompatible value")
		assert.Equal(t, "value", cell.RawValue)
	})

	t.Run("corrupted_cell", func(t *testing.T) {
		db := _prepareSheet(t, canonicalSheetId)
		defer db.Close()

		_ = db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket([]byte(canonicalSheetId)).Put([]byte("Z9"), []byte{0xff})
		})

		_, err := _newSheetRepository(db, nil).SetCell(sheetId, "A1", "1")
		assert.ErrorIs(t, err, SerializerError)
	})
}

func TestSheetRepository_GetCell(t *testing.T) {
	sheetId := "sheet1"
	db := _prepareSheet(t, sheetId)
	defer db.Close()

	sheetRepository := _newSheetRepository(db, nil)

	t.Run("success", func(t *testing.T) {
		cell, err := sheetRepository.GetCell("SHEET1", "b1")

		assert.NoError(t, err)
		assert.Equal(t, &contracts.Cell{RawValue: "=A1+A2", ComputedValue: contracts.NumberValue(3)}, cell)
	})

	t.Run("cell_not_found", func(t *testing.T) {
		cell, err := sheetRepository.GetCell(sheetId, "Z99")

		assert.Nil(t, cell)
		assert.ErrorIs(t, err, contracts.CellNotFoundError)
	})

	t.Run("sheet_not_found", func(t *testing.T) {
		cell, err := sheetRepository.GetCell("unknown", "A1")

		assert.Nil(t, cell)
		assert.ErrorIs(t, err, contracts.SheetNotFoundError)
	})

	t.Run("invalid_cell_id", func(t *testing.T) {
		cell, err := sheetRepository.GetCell(sheetId, "A-1")

		assert.Nil(t, cell)
		assert.ErrorIs(t, err, contracts.InvalidAddressError)
	})
}

func TestSheetRepository_GetSheet(t *testing.T) {
	sheetId := "sheet1"
	db := _prepareSheet(t, sheetId)
	defer db.Close()

	sheetRepository := _newSheetRepository(db, nil)

	t.Run("success", func(t *testing.T) {
		sheet, err := sheetRepository.GetSheet(sheetId)

		assert.NoError(t, err)
		assert.Equal(t, []string{"A1", "A2", "B1"}, sheet.Addresses())
		assert.Equal(t, contracts.NumberValue(3), sheet["B1"].ComputedValue)
	})

	t.Run("sheet_not_found", func(t *testing.T) {
		sheet, err := sheetRepository.GetSheet("unknown")

		assert.Nil(t, sheet)
		assert.ErrorIs(t, err, contracts.SheetNotFoundError)
	})

	t.Run("dependency_bucket_is_not_a_sheet", func(t *testing.T) {
		_, err := sheetRepository.GetSheet("__d_" + sheetId)

		assert.ErrorIs(t, err, contracts.InvalidSheetIdError)
	})
}

func TestSheetRepository_LoadSheet(t *testing.T) {
	t.Run("salary_template", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		webhookDispatcher := mocks.NewWebhookDispatcher(t)
		webhookDispatcher.On("Notify", "salary", mock.Anything).Return().Once()

		sheetRepository := _newSheetRepository(db, webhookDispatcher)

		sheet, err := sheetRepository.LoadSheet("Salary", SalaryTemplate())
		assert.NoError(t, err)
		assert.Equal(t, contracts.TextValue("Monthly Net"), sheet["E1"].ComputedValue)
		assert.Equal(t, contracts.NumberValue(0), sheet["E5"].ComputedValue)

		stored, err := sheetRepository.GetSheet("salary")
		assert.NoError(t, err)
		assert.Equal(t, sheet, stored)

		dependants, err := sheetRepository.GetDependants("salary", "C2")
		assert.NoError(t, err)
		assert.Equal(t, []string{"E2", "E5"}, dependants)

		sheetRepository.webhookDispatcher = nil
		cell, err := sheetRepository.SetCell("salary", "C2", "60000")
		assert.NoError(t, err)
		assert.Equal(t, contracts.NumberValue(60000), cell.ComputedValue)

		net, err := sheetRepository.GetCell("salary", "E2")
		assert.NoError(t, err)
		assert.InDelta(t, 4000, net.ComputedValue.Number, 1e-9)
	})

	t.Run("overlays_existing_cells", func(t *testing.T) {
		db := _prepareSheet(t, "sheet1")
		defer db.Close()

		sheetRepository := _newSheetRepository(db, nil)

		sheet, err := sheetRepository.LoadSheet("sheet1", contracts.Sheet{"a2": {RawValue: "10"}})
		assert.NoError(t, err)

		assert.Equal(t, contracts.NumberValue(10), sheet["A2"].ComputedValue)
		assert.Equal(t, contracts.NumberValue(11), sheet["B1"].ComputedValue)
		assert.Equal(t, []string{"A1", "A2", "B1"}, sheet.Addresses())
	})

	t.Run("invalid_cell_id", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		sheet, err := _newSheetRepository(db, nil).LoadSheet("sheet1", contracts.Sheet{"A1": {}, "1A": {}})

		assert.Nil(t, sheet)
		assert.ErrorIs(t, err, contracts.InvalidAddressError)
	})

	t.Run("invalid_sheet_id", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		_, err := _newSheetRepository(db, nil).LoadSheet("", contracts.Sheet{"A1": {}})

		assert.ErrorIs(t, err, contracts.InvalidSheetIdError)
	})
}

func TestSheetRepository_GetDependants(t *testing.T) {
	db := _prepareSheet(t, "sheet1")
	defer db.Close()

	sheetRepository := _newSheetRepository(db, nil)

	t.Run("success", func(t *testing.T) {
		dependants, err := sheetRepository.GetDependants("sheet1", "A1")

		assert.NoError(t, err)
		assert.Equal(t, []string{"B1"}, dependants)
	})

	t.Run("no_dependants", func(t *testing.T) {
		dependants, err := sheetRepository.GetDependants("sheet1", "B1")

		assert.NoError(t, err)
		assert.Empty(t, dependants)
	})

	t.Run("sheet_not_found", func(t *testing.T) {
		_, err := sheetRepository.GetDependants("unknown", "A1")

		assert.ErrorIs(t, err, contracts.SheetNotFoundError)
	})
}

// _prepareSheet stores A1=1, A2=2, B1==A1+A2
func _prepareSheet(t *testing.T, sheetId string) *bbolt.DB {
	f, err := os.CreateTemp("", "db_*.db")
	assert.NoError(t, err)
	_ = os.Remove(f.Name())
	t.Cleanup(func() { _ = os.Remove(f.Name()) })

	db, err := bbolt.Open(f.Name(), 0600, nil)
	assert.NoError(t, err)

	sheetRepository := _newSheetRepository(db, nil)
	for _, cell := range [][2]string{{"A1", "1"}, {"A2", "2"}, {"B1", "=A1+A2"}} {
		_, err = sheetRepository.SetCell(sheetId, cell[0], cell[1])
		assert.NoError(t, err)
	}

	return db
}

func _createTmpDb() (*bbolt.DB, func()) {
	f, _ := os.CreateTemp("", "db_*.db")
	os.Remove(f.Name())

	db, dbErr := bbolt.Open(f.Name(), 0600, nil)
	if dbErr != nil {
		panic(dbErr)
	}

	return db, func() {
		db.Close()
		os.Remove(f.Name())
	}
}

package main

import (
	"smartSheet/contracts"
)

// GridRecalculator re-derives every computed value with two full passes. Pass 1 reads the
// computed values of the input sheet, pass 2 reads the values of pass 1. A change therefore
// reaches cells one reference hop away in a single call; longer chains settle over later calls.
type GridRecalculator struct {
	engine contracts.FormulaEngine
}

func NewGridRecalculator(engine contracts.FormulaEngine) *GridRecalculator {
	return &GridRecalculator{engine: engine}
}

func (r *GridRecalculator) RecalculateGrid(sheet contracts.Sheet) contracts.Sheet {
	addresses := sheet.Addresses()

	firstPass := r.recalculatePass(sheet, addresses)
	return r.recalculatePass(firstPass, addresses)
}

func (r *GridRecalculator) recalculatePass(snapshot contracts.Sheet, addresses []string) contracts.Sheet {
	next := make(contracts.Sheet, len(snapshot))
	for _, address := range addresses {
		cell := snapshot[address]
		cell.ComputedValue = r.engine.ComputeValue(address, cell.RawValue, snapshot, nil)
		next[address] = cell
	}
	return next
}

package contracts

import (
	"errors"

	"go.alis.build/utils/sets"
)

var EvaluationError = errors.New("evaluation error")

type ExpressionEvaluator interface {
	Evaluate(expression string) (float64, error)
}

type ReferenceResolver interface {
	ExpandRange(rangeText string) ([]Address, error)
	ResolveReference(address string, sheet Sheet) float64
	SubstituteReferences(expression string, sheet Sheet, visited *sets.Set[string]) string
}

type FormulaEngine interface {
	IsFormula(rawValue string) bool
	ComputeValue(address string, rawValue string, sheet Sheet, visited *sets.Set[string]) ComputedValue
	// ExtractReferences lists the canonical addresses a formula reads, ranges expanded
	ExtractReferences(rawValue string) []string
}

type GridRecalculator interface {
	RecalculateGrid(sheet Sheet) Sheet
}

package main

import (
	"errors"
	"regexp"
	"strings"

	"go.alis.build/utils/sets"

	"smartSheet/contracts"
)

const FormulaPrefix = "="

type FormulaEngine struct {
	codec          contracts.AddressCodec
	resolver       contracts.ReferenceResolver
	evaluator      contracts.ExpressionEvaluator
	referenceRegex *regexp.Regexp
}

func NewFormulaEngine(codec contracts.AddressCodec, resolver contracts.ReferenceResolver, evaluator contracts.ExpressionEvaluator) *FormulaEngine {
	return &FormulaEngine{
		codec:          codec,
		resolver:       resolver,
		evaluator:      evaluator,
		referenceRegex: regexp.MustCompile(cellReferencePattern),
	}
}

func (e *FormulaEngine) IsFormula(rawValue string) bool {
	return strings.HasPrefix(rawValue, FormulaPrefix)
}

// ComputeValue derives a cell value from its raw text. References read the computed values
// already present in sheet; addresses in visited (the cell itself included) read as 0.
func (e *FormulaEngine) ComputeValue(address string, rawValue string, sheet contracts.Sheet, visited *sets.Set[string]) (value contracts.ComputedValue) {
	// not formula
	if !e.IsFormula(rawValue) {
		return e.computeLiteral(rawValue)
	}

	defer func() {
		if r := recover(); r != nil {
			value = contracts.ErrorValue(contracts.FormulaErrorMarker)
		}
	}()

	if visited == nil {
		visited = sets.NewSet[string]()
	}
	visited.Add(strings.ToUpper(address))

	formula, err := e.expandRangeFunctions(e.normalize(rawValue))
	if err != nil {
		return contracts.ErrorValue(contracts.FormulaErrorMarker)
	}

	formula = e.resolver.SubstituteReferences(formula, sheet, visited)

	result, err := e.evaluator.Evaluate(formula)
	if errors.Is(err, contracts.EvaluationError) {
		return contracts.ErrorValue(contracts.EvaluationErrorMarker)
	} else if err != nil {
		return contracts.ErrorValue(contracts.FormulaErrorMarker)
	}

	return contracts.NumberValue(result)
}

func (e *FormulaEngine) ExtractReferences(rawValue string) []string {
	references := make([]string, 0)
	// not formula
	if !e.IsFormula(rawValue) {
		return references
	}

	formula := e.normalize(rawValue)
	if expanded, err := e.expandRangeFunctions(formula); err == nil {
		formula = expanded
	}

	seen := sets.NewSet[string]()
	for _, reference := range e.referenceRegex.FindAllString(formula, -1) {
		address, err := e.codec.Decode(reference)
		if err != nil {
			continue
		}

		canonical := e.codec.Encode(address.Row, address.Col)
		if canonical == reference && !seen.Contains(canonical) {
			seen.Add(canonical)
			references = append(references, canonical)
		}
	}

	return references
}

func (e *FormulaEngine) computeLiteral(rawValue string) contracts.ComputedValue {
	if rawValue == "" {
		return contracts.EmptyValue()
	}

	if number, ok := contracts.ParseNumber(rawValue); ok {
		return contracts.NumberValue(number)
	}

	return contracts.TextValue(rawValue)
}

func (e *FormulaEngine) normalize(rawValue string) string {
	return strings.ToUpper(strings.TrimPrefix(rawValue, FormulaPrefix))
}

// expandRangeFunctions rewrites the first call of every range function, in table order
func (e *FormulaEngine) expandRangeFunctions(formula string) (string, error) {
	for _, function := range rangeFunctions {
		match := function.pattern.FindStringSubmatchIndex(formula)
		if match == nil {
			continue
		}

		addresses, err := e.resolver.ExpandRange(formula[match[2]:match[3]])
		if err != nil {
			return "", err
		}

		cellIds := make([]string, 0, len(addresses))
		for _, address := range addresses {
			cellIds = append(cellIds, e.codec.Encode(address.Row, address.Col))
		}

		formula = formula[:match[0]] + function.expand(cellIds) + formula[match[1]:]
	}

	return formula, nil
}

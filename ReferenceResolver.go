package main

import (
	"fmt"
	"regexp"
	"strings"

	"go.alis.build/utils/sets"

	"smartSheet/contracts"
)

const RangeSeparator = ":"

const cellReferencePattern = `[A-Z]+[0-9]+`

// MaxRangeCells bounds how many cells one range may expand to
const MaxRangeCells = 1 << 20

type ReferenceResolver struct {
	codec          contracts.AddressCodec
	referenceRegex *regexp.Regexp
}

func NewReferenceResolver(codec contracts.AddressCodec) *ReferenceResolver {
	return &ReferenceResolver{
		codec:          codec,
		referenceRegex: regexp.MustCompile(cellReferencePattern),
	}
}

// ExpandRange lists a vertical range top to bottom. Ranges spanning columns or running
// upwards expand to nothing; only malformed text is an error.
func (r *ReferenceResolver) ExpandRange(rangeText string) ([]contracts.Address, error) {
	bounds := strings.Split(rangeText, RangeSeparator)
	if len(bounds) != 2 {
		return nil, fmt.Errorf("`%s`: %w", rangeText, contracts.RangeError)
	}

	start, err := r.codec.Decode(bounds[0])
	if err != nil {
		return nil, fmt.Errorf("`%s`: %w: %w", rangeText, contracts.RangeError, err)
	}

	end, err := r.codec.Decode(bounds[1])
	if err != nil {
		return nil, fmt.Errorf("`%s`: %w: %w", rangeText, contracts.RangeError, err)
	}

	if start.Col != end.Col || start.Row > end.Row {
		return []contracts.Address{}, nil
	}

	if end.Row-start.Row >= MaxRangeCells {
		return nil, fmt.Errorf("`%s`: %w: more than %d cells", rangeText, contracts.RangeError, MaxRangeCells)
	}

	addresses := make([]contracts.Address, 0, end.Row-start.Row+1)
	for row := start.Row; row <= end.Row; row++ {
		addresses = append(addresses, contracts.Address{Row: row, Col: start.Col})
	}
	return addresses, nil
}

// ResolveReference never fails: absent cells and non-numeric values read as 0
func (r *ReferenceResolver) ResolveReference(address string, sheet contracts.Sheet) float64 {
	cell, ok := sheet[address]
	if !ok {
		return 0
	}

	if number, ok := cell.ComputedValue.Float(); ok {
		return number
	}
	return 0
}

func (r *ReferenceResolver) SubstituteReferences(expression string, sheet contracts.Sheet, visited *sets.Set[string]) string {
	return r.referenceRegex.ReplaceAllStringFunc(expression, func(reference string) string {
		// cycle: truncate instead of recursing
		if visited != nil && visited.Contains(reference) {
			return "0"
		}

		return formatOperand(r.ResolveReference(reference, sheet))
	})
}

func formatOperand(number float64) string {
	if number < 0 {
		return "(" + contracts.FormatNumber(number) + ")"
	}
	return contracts.FormatNumber(number)
}

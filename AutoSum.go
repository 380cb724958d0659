package main

import (
	"fmt"

	"smartSheet/contracts"
)

// autoSumLookBack is how many cells above the target AutoSum covers at most
const autoSumLookBack = 5

// AutoSumFormula builds `=SUM(C2:C6)` for C7: up to five cells straight above, never row 1
func AutoSumFormula(codec contracts.AddressCodec, cellId string) (string, error) {
	address, err := codec.Decode(cellId)
	if err != nil {
		return "", err
	}

	endRow := address.Row - 1
	startRow := max(1, address.Row-autoSumLookBack)
	if startRow > endRow {
		return "", fmt.Errorf("%s: %w", cellId, contracts.AutoSumRangeError)
	}

	return fmt.Sprintf(
		"%sSUM(%s%s%s)",
		FormulaPrefix, codec.Encode(startRow, address.Col), RangeSeparator, codec.Encode(endRow, address.Col),
	), nil
}

package contracts

import (
	"errors"
	"math"
)

// MaxAddressIndex is the largest zero-based row or column. Addresses live in the int32 space:
// one-based rows and columns up to math.MaxInt32.
const MaxAddressIndex = math.MaxInt32 - 1

// Address is a zero-based (row, column) cell coordinate, both within [0, MaxAddressIndex]
type Address struct {
	Row int
	Col int
}

var InvalidAddressError = errors.New("invalid cell address")

var RangeError = errors.New("invalid range")

type AddressCodec interface {
	Encode(row int, col int) string
	Decode(text string) (Address, error)
	ColumnLetters(col int) string
}

type Canonicalizer interface {
	CanonicalizeCellId(cellId string) (string, error)
	CanonicalizeSheetId(sheetId string) string
}

var AutoSumRangeError = errors.New("no cells above to sum")

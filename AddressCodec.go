package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"smartSheet/contracts"
)

const alphabetSize = 26

type AddressCodec struct {
	addressRegex *regexp.Regexp
}

func NewAddressCodec() *AddressCodec {
	return &AddressCodec{
		addressRegex: regexp.MustCompile(`^([A-Z]+)([0-9]+)$`),
	}
}

// ColumnLetters encodes a zero-based column in bijective base-26: 0 -> A, 25 -> Z, 26 -> AA
func (c *AddressCodec) ColumnLetters(col int) string {
	letters := make([]byte, 0, 3)
	for col >= 0 {
		letters = append(letters, byte('A'+col%alphabetSize))
		col = col/alphabetSize - 1
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// Encode is the inverse of Decode only for rows and columns up to contracts.MaxAddressIndex
func (c *AddressCodec) Encode(row int, col int) string {
	return c.ColumnLetters(col) + strconv.Itoa(row+1)
}

func (c *AddressCodec) Decode(text string) (contracts.Address, error) {
	match := c.addressRegex.FindStringSubmatch(text)
	if match == nil {
		return contracts.Address{}, fmt.Errorf("`%s`: %w", text, contracts.InvalidAddressError)
	}

	col := 0
	for _, letter := range match[1] {
		digit := int(letter-'A') + 1
		if col > (math.MaxInt32-digit)/alphabetSize {
			return contracts.Address{}, fmt.Errorf("`%s`: %w: column out of range", text, contracts.InvalidAddressError)
		}
		col = col*alphabetSize + digit
	}

	row, err := strconv.ParseInt(match[2], 10, 32)
	if err != nil || row < 1 {
		return contracts.Address{}, fmt.Errorf("`%s`: %w: row out of range", text, contracts.InvalidAddressError)
	}

	return contracts.Address{Row: int(row) - 1, Col: col - 1}, nil
}

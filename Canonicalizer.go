package main

import (
	"strings"

	"smartSheet/contracts"
)

// Canonicalizer maps user supplied ids to storage keys: "b07" -> "B7", "Salary" -> "salary"
type Canonicalizer struct {
	codec contracts.AddressCodec
}

func NewCanonicalizer(codec contracts.AddressCodec) *Canonicalizer {
	return &Canonicalizer{codec: codec}
}

func (c *Canonicalizer) CanonicalizeCellId(cellId string) (string, error) {
	address, err := c.codec.Decode(strings.ToUpper(strings.TrimSpace(cellId)))
	if err != nil {
		return "", err
	}

	return c.codec.Encode(address.Row, address.Col), nil
}

func (c *Canonicalizer) CanonicalizeSheetId(sheetId string) string {
	return strings.ToLower(strings.TrimSpace(sheetId))
}

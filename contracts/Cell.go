package contracts

import (
	"errors"
	"sort"
)

type CellStyle struct {
	Bold            bool   `json:"bold,omitempty"`
	Italic          bool   `json:"italic,omitempty"`
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

type Cell struct {
	RawValue      string        `json:"rawValue"`
	ComputedValue ComputedValue `json:"computedValue"`
	Style         *CellStyle    `json:"style,omitempty"`
}

// CellUpdate is the webhook payload of a cell whose computed value changed
type CellUpdate struct {
	SheetId string `json:"sheetId"`
	Address string `json:"address"`
	Cell
}

// Sheet maps canonical address text ("B12") to its cell. Absent addresses are empty.
type Sheet map[string]Cell

func (s Sheet) Clone() Sheet {
	clone := make(Sheet, len(s))
	for address, cell := range s {
		clone[address] = cell
	}
	return clone
}

// Addresses returns the sheet addresses in a stable order
func (s Sheet) Addresses() []string {
	addresses := make([]string, 0, len(s))
	for address := range s {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}

var CellNotFoundError = errors.New("cell not found")

var SheetNotFoundError = errors.New("sheet not found")

var InvalidSheetIdError = errors.New("invalid sheet id")

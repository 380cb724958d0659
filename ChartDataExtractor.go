package main

import (
	"fmt"
	"slices"
	"strconv"

	"smartSheet/contracts"
)

const ChartRows = 20

const ChartCols = 10

type ChartPoint struct {
	Name   string             `json:"name"`
	Values map[string]float64 `json:"values"`
}

type ChartData struct {
	Points []ChartPoint `json:"points"`
	Series []string     `json:"series"`
}

type ChartDataExtractor struct {
	codec contracts.AddressCodec
}

func NewChartDataExtractor(codec contracts.AddressCodec) *ChartDataExtractor {
	return &ChartDataExtractor{codec: codec}
}

// Extract treats row 1 as headers and turns every later row with a numeric value into a point
func (e *ChartDataExtractor) Extract(sheet contracts.Sheet) ChartData {
	grid := gridValues(e.codec, sheet, ChartRows, ChartCols)

	headers := make([]string, ChartCols)
	for col, value := range grid[0] {
		headers[col] = e.headerLabel(col, value)
	}

	data := ChartData{Points: []ChartPoint{}, Series: []string{}}

	for row := 1; row < ChartRows; row++ {
		point := ChartPoint{Name: "Row " + strconv.Itoa(row+1), Values: map[string]float64{}}

		for col, value := range grid[row] {
			if value.Kind == contracts.ValueNumber {
				point.Values[headers[col]] = value.Number
			}
		}

		if len(point.Values) > 0 {
			data.Points = append(data.Points, point)
		}
	}

	if len(data.Points) == 0 {
		return data
	}

	// series follow the first point, in column order
	first := data.Points[0]
	for _, header := range headers {
		if _, ok := first.Values[header]; ok && !slices.Contains(data.Series, header) {
			data.Series = append(data.Series, header)
		}
	}

	return data
}

func (e *ChartDataExtractor) headerLabel(col int, value contracts.ComputedValue) string {
	if value.IsEmpty() || (value.Kind == contracts.ValueNumber && value.Number == 0) {
		return fmt.Sprintf("Col %s", e.codec.ColumnLetters(col))
	}
	return value.String()
}

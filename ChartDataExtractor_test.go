package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartSheet/contracts"
)

func TestChartDataExtractor_Extract(t *testing.T) {
	extractor := NewChartDataExtractor(NewAddressCodec())

	t.Run("headers_and_points", func(t *testing.T) {
		sheet := contracts.Sheet{
			"A1": {ComputedValue: contracts.TextValue("Month")},
			"B1": {ComputedValue: contracts.TextValue("Income")},
			"C1": {ComputedValue: contracts.TextValue("Costs")},
			"A2": {ComputedValue: contracts.TextValue("Jan")},
			"B2": {ComputedValue: contracts.NumberValue(100)},
			"C2": {ComputedValue: contracts.NumberValue(40)},
			"A3": {ComputedValue: contracts.TextValue("Feb")},
			"B3": {ComputedValue: contracts.NumberValue(120)},
			"C3": {ComputedValue: contracts.ErrorValue(contracts.EvaluationErrorMarker)},
			"A4": {ComputedValue: contracts.TextValue("notes only")},
			"B5": {ComputedValue: contracts.NumberValue(90)},
		}

		assert.Equal(t, ChartData{
			Points: []ChartPoint{
				{Name: "Row 2", Values: map[string]float64{"Income": 100, "Costs": 40}},
				{Name: "Row 3", Values: map[string]float64{"Income": 120}},
				{Name: "Row 5", Values: map[string]float64{"Income": 90}},
			},
			Series: []string{"Income", "Costs"},
		}, extractor.Extract(sheet))
	})

	t.Run("missing_headers", func(t *testing.T) {
		sheet := contracts.Sheet{
			"A1": {ComputedValue: contracts.NumberValue(0)},
			"C1": {ComputedValue: contracts.NumberValue(2024)},
			"A2": {ComputedValue: contracts.NumberValue(1)},
			"B2": {ComputedValue: contracts.NumberValue(2)},
			"C2": {ComputedValue: contracts.NumberValue(3)},
		}

		assert.Equal(t, ChartData{
			Points: []ChartPoint{
				{Name: "Row 2", Values: map[string]float64{"Col A": 1, "Col B": 2, "2024": 3}},
			},
			Series: []string{"Col A", "Col B", "2024"},
		}, extractor.Extract(sheet))
	})

	t.Run("outside_window", func(t *testing.T) {
		sheet := contracts.Sheet{
			"K2":  {ComputedValue: contracts.NumberValue(1)},
			"A21": {ComputedValue: contracts.NumberValue(1)},
			// text numbers are not plotted
			"A2": {ComputedValue: contracts.TextValue("12")},
		}

		assert.Equal(t, ChartData{Points: []ChartPoint{}, Series: []string{}}, extractor.Extract(sheet))
	})

	t.Run("empty_sheet", func(t *testing.T) {
		data := extractor.Extract(contracts.Sheet{})

		assert.Empty(t, data.Points)
		assert.NotNil(t, data.Points)
		assert.NotNil(t, data.Series)
	})
}

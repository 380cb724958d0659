package main

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"

	"smartSheet/contracts"
)

const ExportSheetName = "Sheet1"

type SheetExporter struct {
	codec contracts.AddressCodec
}

func NewSheetExporter(codec contracts.AddressCodec) *SheetExporter {
	return &SheetExporter{codec: codec}
}

// ExportXLSX writes computed values (not formulas) of the rows x cols window into a single "Sheet1" workbook
func (e *SheetExporter) ExportXLSX(w io.Writer, sheet contracts.Sheet, rows int, cols int) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	styles := map[contracts.CellStyle]int{}

	for row, values := range gridValues(e.codec, sheet, rows, cols) {
		rowStart, err := excelize.CoordinatesToCellName(1, row+1)
		if err != nil {
			return err
		}

		cells := make([]interface{}, len(values))
		for col, value := range values {
			cells[col] = xlsxValue(value)
		}
		if err = f.SetSheetRow(ExportSheetName, rowStart, &cells); err != nil {
			return err
		}

		for col := range values {
			cell, ok := sheet[e.codec.Encode(row, col)]
			if !ok || cell.Style == nil {
				continue
			}

			styleId, ok := styles[*cell.Style]
			if !ok {
				if styleId, err = f.NewStyle(xlsxStyle(cell.Style)); err != nil {
					return err
				}
				styles[*cell.Style] = styleId
			}

			cellName, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return err
			}
			if err = f.SetCellStyle(ExportSheetName, cellName, cellName, styleId); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func (e *SheetExporter) ExportCSV(w io.Writer, sheet contracts.Sheet, rows int, cols int) error {
	writer := csv.NewWriter(w)

	for _, values := range gridValues(e.codec, sheet, rows, cols) {
		record := make([]string, len(values))
		for col, value := range values {
			record[col] = value.String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// gridValues lays the computed values of the rows x cols window out row by row; absent cells are empty
func gridValues(codec contracts.AddressCodec, sheet contracts.Sheet, rows int, cols int) [][]contracts.ComputedValue {
	grid := make([][]contracts.ComputedValue, 0, rows)

	for row := 0; row < rows; row++ {
		values := make([]contracts.ComputedValue, cols)
		for col := 0; col < cols; col++ {
			values[col] = sheet[codec.Encode(row, col)].ComputedValue
		}
		grid = append(grid, values)
	}

	return grid
}

func xlsxValue(value contracts.ComputedValue) interface{} {
	switch value.Kind {
	case contracts.ValueNumber:
		return value.Number
	case contracts.ValueEmpty:
		return nil
	default:
		return value.Text
	}
}

func xlsxStyle(style *contracts.CellStyle) *excelize.Style {
	xlsx := &excelize.Style{
		Font: &excelize.Font{
			Bold:   style.Bold,
			Italic: style.Italic,
			Color:  style.Color,
		},
	}

	if style.BackgroundColor != "" {
		xlsx.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{style.BackgroundColor}}
	}

	return xlsx
}

package contracts

import "io"

type SheetExporter interface {
	ExportXLSX(w io.Writer, sheet Sheet, rows int, cols int) error
	ExportCSV(w io.Writer, sheet Sheet, rows int, cols int) error
}

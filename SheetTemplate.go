package main

import (
	"fmt"

	"smartSheet/contracts"
)

const salaryTemplateRows = 3

// SalaryTemplate is the starter sheet: three staff rows netting (annual / 12) * (1 - tax) and a total
func SalaryTemplate() contracts.Sheet {
	headerStyle := &contracts.CellStyle{Bold: true, BackgroundColor: "#f3f4f6", Color: "#1f2937"}
	totalStyle := &contracts.CellStyle{Bold: true, BackgroundColor: "#e5e7eb"}

	sheet := contracts.Sheet{}
	for col, header := range []string{"Staff Name", "Role", "Annual Salary", "Tax Rate", "Monthly Net"} {
		sheet[string(rune('A'+col))+"1"] = contracts.Cell{
			RawValue:      header,
			ComputedValue: contracts.TextValue(header),
			Style:         headerStyle,
		}
	}

	for row := 2; row < 2+salaryTemplateRows; row++ {
		sheet[fmt.Sprintf("A%d", row)] = contracts.Cell{}
		sheet[fmt.Sprintf("B%d", row)] = contracts.Cell{}
		sheet[fmt.Sprintf("C%d", row)] = contracts.Cell{RawValue: "0", ComputedValue: contracts.NumberValue(0)}
		sheet[fmt.Sprintf("D%d", row)] = contracts.Cell{RawValue: "0.20", ComputedValue: contracts.NumberValue(0.2)}
		sheet[fmt.Sprintf("E%d", row)] = contracts.Cell{
			RawValue:      fmt.Sprintf("=(C%d/12)*(1-D%d)", row, row),
			ComputedValue: contracts.NumberValue(0),
		}
	}

	totalRow := 2 + salaryTemplateRows
	sheet[fmt.Sprintf("A%d", totalRow)] = contracts.Cell{
		RawValue:      "TOTAL",
		ComputedValue: contracts.TextValue("TOTAL"),
		Style:         totalStyle,
	}
	sheet[fmt.Sprintf("E%d", totalRow)] = contracts.Cell{
		RawValue:      fmt.Sprintf("=SUM(E2:E%d)", totalRow-1),
		ComputedValue: contracts.NumberValue(0),
		Style:         totalStyle,
	}

	return sheet
}

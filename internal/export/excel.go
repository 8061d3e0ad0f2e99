package export

import (
	"fmt"
	"strings"

	"github.com/olejniktut/dc-landscaping/internal/service"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Time Report"

var columnWidths = map[string]float64{
	"A": 12, // Date
	"B": 20, // Property
	"C": 10, // Type
	"D": 25, // Workers
	"E": 10, // Hours
	"F": 12, // Cost
}

// ReportWorkbook renders the report rows into a styled spreadsheet:
// title, period/scope line, header band, bordered data rows and a bold
// TOTAL row.
func ReportWorkbook(data *service.ReportExport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	thinBorder := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	numFmtTwoDecimals := 2 // built-in "0.00"

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	infoStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return nil, err
	}
	numberStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder, NumFmt: numFmtTwoDecimals})
	if err != nil {
		return nil, err
	}
	totalLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E8F5E9"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}
	totalNumberStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E8F5E9"}, Pattern: 1},
		Border: thinBorder,
		NumFmt: numFmtTwoDecimals,
	})
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(sheetName, "A1", "F1"); err != nil {
		return nil, err
	}
	f.SetCellValue(sheetName, "A1", "DC Landscaping - Time Report")
	f.SetCellStyle(sheetName, "A1", "F1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", "F2"); err != nil {
		return nil, err
	}
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Period: %s to %s | Property: %s",
		data.StartDate.Format("2006-01-02"), data.EndDate.Format("2006-01-02"), data.ScopeLabel))
	f.SetCellStyle(sheetName, "A2", "F2", infoStyle)

	headers := []string{"Date", "Property", "Type", "Workers", "Hours", "Cost"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c4", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A4", "F4", headerStyle)

	row := 5
	for _, record := range data.Rows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), record.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), record.Property)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), record.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), strings.Join(record.Workers, ", "))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), record.Hours)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), record.Cost)

		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), cellStyle)
		f.SetCellStyle(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("F%d", row), numberStyle)
		row++
	}

	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), cellStyle)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), "TOTAL:")
	f.SetCellStyle(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), totalLabelStyle)
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), data.TotalHours)
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), data.TotalCost)
	f.SetCellStyle(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("F%d", row), totalNumberStyle)

	for column, width := range columnWidths {
		if err := f.SetColWidth(sheetName, column, column, width); err != nil {
			return nil, err
		}
	}

	return f, nil
}

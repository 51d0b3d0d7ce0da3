package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"farm-tracker/internal/api"
)

const sheetName = "Timesheet"

// WriteXLSX writes the timesheet as a single-sheet workbook. Hours are
// numeric cells so spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, sheet *api.Timesheet, opts Options) error {
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	title := fmt.Sprintf("%s, week %d of %d", sheet.Worker.Name, sheet.Summary.WeekNumber, sheet.Summary.Year)
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return err
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A2", &headerRow); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "F2", bold); err != nil {
		return err
	}

	hoursStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return err
	}

	for i, r := range rows(sheet, opts) {
		values := make([]interface{}, 0, len(r.cells)+1)
		for _, c := range r.cells {
			values = append(values, c)
		}
		if r.hours != nil {
			values = append(values, *r.hours)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
		hoursCell, err := excelize.CoordinatesToCellName(len(header), i+3)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, hoursCell, hoursCell, hoursStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "F", 14); err != nil {
		return err
	}
	return f.Write(w)
}

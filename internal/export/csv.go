package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"farm-tracker/internal/api"
)

// WriteCSV writes the timesheet as comma separated values with a header row.
func WriteCSV(w io.Writer, sheet *api.Timesheet, opts Options) error {
	opts = opts.withDefaults()
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows(sheet, opts) {
		record := append(append([]string{}, r.cells...), "")
		if r.hours != nil {
			record[len(record)-1] = strconv.FormatFloat(*r.hours, 'f', 2, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Package export writes weekly timesheets as CSV or XLSX.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"farm-tracker/internal/api"
	"farm-tracker/internal/domain"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use csv or xlsx)", s)
	}
}

// Options control how cells are rendered.
type Options struct {
	TimeFormat string    // clock-in/out layout, "15:04" when empty
	DateFormat string    // "2006-01-02" when empty
	Now        time.Time // live hours of open blocks are measured up to Now
}

func (o Options) withDefaults() Options {
	if o.TimeFormat == "" {
		o.TimeFormat = "15:04"
	}
	if o.DateFormat == "" {
		o.DateFormat = "2006-01-02"
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

var header = []string{"Date", "Day", "Block", "Clock In", "Clock Out", "Hours"}

// row is one timesheet line before encoding. Hours is nil on text-only rows.
type row struct {
	cells []string
	hours *float64
}

// rows lays out the sheet: a line per block, then the week totals.
func rows(sheet *api.Timesheet, opts Options) []row {
	var out []row
	for _, day := range sheet.Days {
		for _, b := range day.Blocks {
			h := b.Hours(opts.Now)
			out = append(out, row{
				cells: []string{
					day.Date.Format(opts.DateFormat),
					day.Date.Weekday().String(),
					strconv.Itoa(b.BlockNumber),
					b.ClockInTime.Local().Format(opts.TimeFormat),
					clockOutCell(b, opts),
				},
				hours: &h,
			})
		}
	}

	total := sheet.Summary.TotalHours
	overtime := sheet.Summary.OvertimeHours
	out = append(out,
		row{cells: []string{"Total", "", "", "", ""}, hours: &total},
		row{cells: []string{"Overtime", "", "", "", ""}, hours: &overtime},
	)
	return out
}

func clockOutCell(b domain.TimeBlock, opts Options) string {
	if b.ClockOutTime == nil {
		return "open"
	}
	return b.ClockOutTime.Local().Format(opts.TimeFormat)
}

// Write encodes sheet to w in the given format.
func Write(w io.Writer, sheet *api.Timesheet, format Format, opts Options) error {
	opts = opts.withDefaults()
	switch format {
	case FormatCSV:
		return WriteCSV(w, sheet, opts)
	case FormatXLSX:
		return WriteXLSX(w, sheet, opts)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// Filename suggests a file name such as "alice-2024-W24.csv".
func Filename(sheet *api.Timesheet, format Format) string {
	name := strings.ToLower(strings.Join(strings.Fields(sheet.Worker.Name), "-"))
	return fmt.Sprintf("%s-%d-W%02d.%s", name, sheet.Summary.Year, sheet.Summary.WeekNumber, format)
}

// Package api is the business facade the CLI and HTTP server call. It
// checks identifiers, delegates to the services and shapes results for
// presentation.
package api

import (
	"time"

	"github.com/dustin/go-humanize"

	"farm-tracker/internal/domain"
	"farm-tracker/internal/services"
)

// ClockEvent is the outcome of a clock-in or clock-out.
type ClockEvent struct {
	Worker   *domain.Worker    `json:"worker"`
	Block    *domain.TimeBlock `json:"block"`
	DayHours float64           `json:"day_hours"`
}

// ClockStatus describes where a worker stands today.
type ClockStatus struct {
	Worker      *domain.Worker    `json:"worker"`
	IsClockedIn bool              `json:"is_clocked_in"`
	OpenBlock   *domain.TimeBlock `json:"open_block,omitempty"`
	OpenSince   string            `json:"open_since,omitempty"` // e.g. "2 hours ago"
	DayHours    float64           `json:"day_hours"`
	BlockCount  int               `json:"block_count"`
}

// Timesheet is one worker's week with every block, ready for export.
type Timesheet struct {
	Worker  *domain.Worker          `json:"worker"`
	Summary *services.WeeklySummary `json:"summary"`
	Days    []*services.DaySummary  `json:"days"` // Monday first
}

// Blocks returns every block of the week in day then block order.
func (t *Timesheet) Blocks() []domain.TimeBlock {
	var blocks []domain.TimeBlock
	for _, d := range t.Days {
		blocks = append(blocks, d.Blocks...)
	}
	return blocks
}

// FieldOverview pairs a field with its latest soil report, if any.
type FieldOverview struct {
	Field        *domain.Field      `json:"field"`
	TestCount    int                `json:"test_count"`
	LatestReport *domain.SoilReport `json:"latest_report,omitempty"`
}

// FormatHours renders hours with two decimals and thousands separators.
func FormatHours(h float64) string {
	return humanize.FormatFloat("#,###.##", h)
}

// since renders how long ago t was relative to now.
func since(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

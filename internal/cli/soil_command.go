package cli

import (
	"context"
	"fmt"

	"farm-tracker/internal/domain"
)

// SoilCommand records soil tests and prints their reports
type SoilCommand struct {
	app *App
}

// NewSoilCommand creates a new soil command handler
func NewSoilCommand(app *App) *SoilCommand {
	return &SoilCommand{app: app}
}

// Add records a test and prints its report straight away
func (c *SoilCommand) Add(ctx context.Context, draft domain.SoilTestDraft) error {
	test, err := c.app.businessAPI.RecordSoilTest(ctx, draft)
	if err != nil {
		return c.app.errors.Handle("record soil test", err)
	}
	c.app.printf("Recorded soil test %s\n\n", test.ID)
	return c.Report(ctx, test.ID, "")
}

// List prints a field's tests, newest first
func (c *SoilCommand) List(ctx context.Context, fieldID string) error {
	tests, err := c.app.businessAPI.ListSoilTests(ctx, fieldID)
	if err != nil {
		return c.app.errors.Handle("list soil tests", err)
	}
	if len(tests) == 0 {
		c.app.printf("No soil tests found\n")
		return nil
	}

	tw := c.app.table()
	fmt.Fprintln(tw, "ID\tDATE\tPH\tOM%\tP\tK\tCEC")
	for _, t := range tests {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.0f\t%.0f\t%.1f\n",
			t.ID, t.TestDate.Format(c.app.dateFormat()), t.PH, t.OrganicMatter, t.Phosphorus, t.Potassium, t.CEC)
	}
	return tw.Flush()
}

// Report prints the interpretation of one test, or of the field's latest
// test when testID is empty.
func (c *SoilCommand) Report(ctx context.Context, testID, fieldID string) error {
	var (
		report *domain.SoilReport
		err    error
	)
	if testID != "" {
		report, err = c.app.businessAPI.GetSoilReport(ctx, testID)
	} else {
		report, err = c.app.businessAPI.GetLatestSoilReport(ctx, fieldID)
	}
	if err != nil {
		return c.app.errors.Handle("get soil report", err)
	}

	t := report.Test
	c.app.printf("Soil test %s (%s)\n", t.TestDate.Format(c.app.dateFormat()), report.Age.Display)
	if t.LabReference != nil {
		c.app.printf("Lab reference: %s\n", *t.LabReference)
	}
	if !report.IsRecent {
		c.app.printf("This test is out of date\n")
	}

	tw := c.app.table()
	fmt.Fprintf(tw, "pH\t%.1f\t%s\n", t.PH, report.PHStatus)
	fmt.Fprintf(tw, "Organic matter\t%.1f%%\t%s\n", t.OrganicMatter, report.OrganicMatter)
	fmt.Fprintf(tw, "Phosphorus\t%.0f ppm\t%s\n", t.Phosphorus, report.NutrientLevels[domain.Phosphorus])
	fmt.Fprintf(tw, "Potassium\t%.0f ppm\t%s\n", t.Potassium, report.NutrientLevels[domain.Potassium])
	fmt.Fprintf(tw, "CEC\t%.1f\t%s\n", t.CEC, report.NutrientLevels[domain.CEC])
	fmt.Fprintf(tw, "Nutrients\t\t%s\n", report.NutrientStatus)
	fmt.Fprintf(tw, "Biology\t\t%s\n", report.BiologyStatus)
	if err := tw.Flush(); err != nil {
		return err
	}

	c.app.printf("\nInterpretation:\n")
	for _, line := range report.Interpretation {
		c.app.printf("  - %s\n", line)
	}
	c.app.printf("\nRecommendations:\n")
	for _, line := range report.Recommendations {
		c.app.printf("  - %s\n", line)
	}
	return nil
}

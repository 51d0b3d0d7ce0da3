package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"farm-tracker/internal/domain"
)

// FarmCommand handles farms and their fields
type FarmCommand struct {
	app *App
}

// NewFarmCommand creates a new farm command handler
func NewFarmCommand(app *App) *FarmCommand {
	return &FarmCommand{app: app}
}

// AddFarm registers a farm
func (c *FarmCommand) AddFarm(ctx context.Context, draft domain.FarmDraft) error {
	farm, err := c.app.businessAPI.CreateFarm(ctx, draft)
	if err != nil {
		return c.app.errors.Handle("add farm", err)
	}
	c.app.printf("Added farm %s\nID: %s\n", farm.Name, farm.ID)
	return nil
}

// ListFarms prints every farm
func (c *FarmCommand) ListFarms(ctx context.Context) error {
	farms, err := c.app.businessAPI.ListFarms(ctx)
	if err != nil {
		return c.app.errors.Handle("list farms", err)
	}
	if len(farms) == 0 {
		c.app.printf("No farms found\n")
		return nil
	}

	tw := c.app.table()
	fmt.Fprintln(tw, "ID\tNAME\tOWNER\tACRES")
	for _, f := range farms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, f.OwnerName, acres(f.Acreage))
	}
	return tw.Flush()
}

// AddField registers a field on a farm
func (c *FarmCommand) AddField(ctx context.Context, draft domain.FieldDraft) error {
	field, err := c.app.businessAPI.CreateField(ctx, draft)
	if err != nil {
		return c.app.errors.Handle("add field", err)
	}
	c.app.printf("Added field %s\nID: %s\n", field.Name, field.ID)
	return nil
}

// ListFields prints the fields of one farm, or of every farm when farmID is empty
func (c *FarmCommand) ListFields(ctx context.Context, farmID string) error {
	fields, err := c.app.businessAPI.ListFields(ctx, farmID)
	if err != nil {
		return c.app.errors.Handle("list fields", err)
	}
	if len(fields) == 0 {
		c.app.printf("No fields found\n")
		return nil
	}

	tw := c.app.table()
	fmt.Fprintln(tw, "ID\tNAME\tCROP\tSOIL\tACRES")
	for _, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.ID, f.Name, f.CropType, f.SoilType, acres(f.Acreage))
	}
	return tw.Flush()
}

// ShowField prints a field with the headline of its latest soil report
func (c *FarmCommand) ShowField(ctx context.Context, fieldID string) error {
	overview, err := c.app.businessAPI.GetFieldOverview(ctx, fieldID)
	if err != nil {
		return c.app.errors.Handle("show field", err)
	}

	f := overview.Field
	c.app.printf("%s\n", f.Name)
	c.app.printf("  ID:     %s\n", f.ID)
	c.app.printf("  Farm:   %s\n", f.FarmID)
	c.app.printf("  Acres:  %s\n", acres(f.Acreage))
	if f.CropType != "" {
		c.app.printf("  Crop:   %s\n", f.CropType)
	}
	if f.SoilType != "" {
		c.app.printf("  Soil:   %s\n", f.SoilType)
	}
	c.app.printf("  Tests:  %d\n", overview.TestCount)

	if r := overview.LatestReport; r != nil {
		c.app.printf("  Latest: %s (%s), pH %s, nutrients %s\n",
			r.Test.TestDate.Format(c.app.dateFormat()), r.Age.Display, r.PHStatus, r.NutrientStatus)
	}
	return nil
}

func acres(a float64) string {
	return humanize.FormatFloat("#,###.#", a)
}

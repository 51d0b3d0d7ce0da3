package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"farm-tracker/internal/domain"
)

func (r *RootCommand) workerCommand() *cobra.Command {
	worker := &cobra.Command{
		Use:   "worker",
		Short: "Manage workers",
	}

	var draft domain.WorkerDraft
	var hireDate string
	add := &cobra.Command{
		Use:   "add",
		Short: "Onboard a new worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				if hireDate != "" {
					d, err := app.parseDate(hireDate)
					if err != nil {
						return err
					}
					draft.HireDate = &d
				}
				return NewWorkerCommand(app).Add(ctx, draft)
			})
		},
	}
	add.Flags().StringVar(&draft.Name, "name", "", "Full name")
	add.Flags().StringVar(&draft.Position, "position", "", "Job title")
	add.Flags().StringVar(&draft.Phone, "phone", "", "Phone number")
	add.Flags().StringVar(&draft.Email, "email", "", "Email address")
	add.Flags().StringVar(&hireDate, "hire-date", "", "Hire date (YYYY-MM-DD)")
	_ = add.MarkFlagRequired("name")

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewWorkerCommand(app).List(ctx, all)
			})
		},
	}
	list.Flags().BoolVar(&all, "all", false, "Include deactivated workers")

	show := &cobra.Command{
		Use:   "show <worker-id>",
		Short: "Show a worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewWorkerCommand(app).Show(ctx, args[0])
			})
		},
	}

	deactivate := &cobra.Command{
		Use:   "deactivate <worker-id>",
		Short: "Deactivate a worker, keeping their time records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewWorkerCommand(app).Deactivate(ctx, args[0])
			})
		},
	}

	worker.AddCommand(add, list, show, deactivate)
	return worker
}

func (r *RootCommand) clockCommand() *cobra.Command {
	clk := &cobra.Command{
		Use:   "clock",
		Short: "Clock workers in and out",
	}

	in := &cobra.Command{
		Use:   "in <worker-id>",
		Short: "Start a time block",
		Long:  "Start a time block for today. If the worker is already clocked in, the open block is reported.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewClockCommand(app).In(ctx, args[0])
			})
		},
	}

	out := &cobra.Command{
		Use:   "out <worker-id>",
		Short: "Close today's open time block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewClockCommand(app).Out(ctx, args[0])
			})
		},
	}

	status := &cobra.Command{
		Use:   "status <worker-id>",
		Short: "Show whether a worker is on the clock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewClockCommand(app).Status(ctx, args[0])
			})
		},
	}

	clk.AddCommand(in, out, status)
	return clk
}

func (r *RootCommand) hoursCommand() *cobra.Command {
	hours := &cobra.Command{
		Use:   "hours",
		Short: "Show daily and weekly hours",
	}

	var dayDate string
	day := &cobra.Command{
		Use:   "day <worker-id>",
		Short: "Show the blocks and total for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewHoursCommand(app).Day(ctx, args[0], dayDate)
			})
		},
	}
	day.Flags().StringVar(&dayDate, "date", "", "Day to show (YYYY-MM-DD, default today)")

	var weekDate string
	var offset int
	week := &cobra.Command{
		Use:   "week <worker-id>",
		Short: "Show the Monday to Sunday breakdown with overtime",
		Example: `  farm hours week <worker-id>              # this week
  farm hours week <worker-id> --offset -1  # last week`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewHoursCommand(app).Week(ctx, args[0], weekDate, offset)
			})
		},
	}
	week.Flags().StringVar(&weekDate, "date", "", "Any day in the week (YYYY-MM-DD, default today)")
	week.Flags().IntVar(&offset, "offset", 0, "Weeks to move from the selected week")

	hours.AddCommand(day, week)
	return hours
}

func (r *RootCommand) farmCommand() *cobra.Command {
	farm := &cobra.Command{
		Use:   "farm",
		Short: "Manage farms",
	}

	var draft domain.FarmDraft
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a farm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewFarmCommand(app).AddFarm(ctx, draft)
			})
		},
	}
	add.Flags().StringVar(&draft.Name, "name", "", "Farm name")
	add.Flags().StringVar(&draft.OwnerName, "owner", "", "Owner name")
	add.Flags().StringVar(&draft.Address, "address", "", "Postal address")
	add.Flags().Float64Var(&draft.Acreage, "acres", 0, "Total acreage")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List farms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewFarmCommand(app).ListFarms(ctx)
			})
		},
	}

	farm.AddCommand(add, list)
	return farm
}

func (r *RootCommand) fieldCommand() *cobra.Command {
	field := &cobra.Command{
		Use:   "field",
		Short: "Manage fields",
	}

	var draft domain.FieldDraft
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a field on a farm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewFarmCommand(app).AddField(ctx, draft)
			})
		},
	}
	add.Flags().StringVar(&draft.FarmID, "farm", "", "Farm ID")
	add.Flags().StringVar(&draft.Name, "name", "", "Field name")
	add.Flags().Float64Var(&draft.Acreage, "acres", 0, "Acreage")
	add.Flags().StringVar(&draft.CropType, "crop", "", "Current crop")
	add.Flags().StringVar(&draft.SoilType, "soil", "", "Soil type")
	_ = add.MarkFlagRequired("farm")
	_ = add.MarkFlagRequired("name")

	var farmID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewFarmCommand(app).ListFields(ctx, farmID)
			})
		},
	}
	list.Flags().StringVar(&farmID, "farm", "", "Only fields of this farm")

	show := &cobra.Command{
		Use:   "show <field-id>",
		Short: "Show a field and its latest soil report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewFarmCommand(app).ShowField(ctx, args[0])
			})
		},
	}

	field.AddCommand(add, list, show)
	return field
}

func (r *RootCommand) soilCommand() *cobra.Command {
	soil := &cobra.Command{
		Use:   "soil",
		Short: "Record soil tests and read their reports",
	}

	var draft domain.SoilTestDraft
	var testDate string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a soil test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				d, err := app.parseDate(testDate)
				if err != nil {
					return err
				}
				draft.TestDate = d
				return NewSoilCommand(app).Add(ctx, draft)
			})
		},
	}
	add.Flags().StringVar(&draft.FieldID, "field", "", "Field ID")
	add.Flags().StringVar(&testDate, "date", "", "Sampling date (YYYY-MM-DD, default today)")
	add.Flags().Float64Var(&draft.PH, "ph", 0, "pH")
	add.Flags().Float64Var(&draft.OrganicMatter, "om", 0, "Organic matter percent")
	add.Flags().Float64Var(&draft.Phosphorus, "p", 0, "Phosphorus ppm")
	add.Flags().Float64Var(&draft.Potassium, "k", 0, "Potassium ppm")
	add.Flags().Float64Var(&draft.CEC, "cec", 0, "Cation exchange capacity, meq/100g")
	add.Flags().StringVar(&draft.LabReference, "lab-ref", "", "Laboratory reference")
	add.Flags().StringVar(&draft.Notes, "notes", "", "Notes")
	_ = add.MarkFlagRequired("field")
	_ = add.MarkFlagRequired("ph")

	list := &cobra.Command{
		Use:   "list <field-id>",
		Short: "List a field's soil tests, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewSoilCommand(app).List(ctx, args[0])
			})
		},
	}

	var fieldID string
	report := &cobra.Command{
		Use:   "report [test-id]",
		Short: "Interpret a soil test",
		Long:  "Interpret a soil test by ID, or the latest test of a field with --field.",
		Args: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) != (fieldID != "") {
				return nil
			}
			return errInvalidReportArgs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				testID := ""
				if len(args) == 1 {
					testID = args[0]
				}
				return NewSoilCommand(app).Report(ctx, testID, fieldID)
			})
		},
	}
	report.Flags().StringVar(&fieldID, "field", "", "Report the field's latest test")

	soil.AddCommand(add, list, report)
	return soil
}

func (r *RootCommand) exportCommand() *cobra.Command {
	exp := &cobra.Command{
		Use:   "export",
		Short: "Export timesheets",
	}

	var date, format, out string
	var offset int
	week := &cobra.Command{
		Use:   "week <worker-id>",
		Short: "Export a worker's weekly timesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewExportCommand(app).Week(ctx, args[0], date, offset, format, out)
			})
		},
	}
	week.Flags().StringVar(&date, "date", "", "Any day in the week (YYYY-MM-DD, default today)")
	week.Flags().IntVar(&offset, "offset", 0, "Weeks to move from the selected week")
	week.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	week.Flags().StringVarP(&out, "out", "o", "", "Output file (default <worker>-<year>-W<week>.<format>)")

	exp.AddCommand(week)
	return exp
}

var errInvalidReportArgs = errors.New("give either a test ID or --field, not both")

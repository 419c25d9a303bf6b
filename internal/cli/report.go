package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyapp/andy/internal/model"
	"github.com/andyapp/andy/internal/report"
	"github.com/andyapp/andy/internal/store"
)

// ReportOptions holds flags for the report subcommands.
type ReportOptions struct {
	*RootOptions
	Date    string
	Group   string
	Student string
	Output  string
}

// NewReportCommand creates the report command group.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate printable plain-text reports",
	}

	day := &cobra.Command{
		Use:   "day",
		Short: "Day bulletin: every evaluation of one date plus the case of the day",
		Long: `Day bulletin: every evaluation of one date plus the case of the day.

Example:
  andy report day --date 2026-08-31 --group G2 -o boletim.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportDay(opts, cmd)
		},
	}
	day.Flags().StringVar(&opts.Date, "date", "", "date YYYY-MM-DD (defaults to today)")
	day.Flags().StringVar(&opts.Group, "group", "", "restrict to one discussion group")
	day.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")

	student := &cobra.Command{
		Use:           "student",
		Short:         "Full history of one student",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportStudent(opts, cmd)
		},
	}
	student.Flags().StringVar(&opts.Student, "student", "", "student identifier (required)")
	_ = student.MarkFlagRequired("student")
	student.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")

	caseSheet := &cobra.Command{
		Use:           "case",
		Short:         "Standalone anonymized case sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportCase(opts, cmd)
		},
	}
	caseSheet.Flags().StringVar(&opts.Date, "date", "", "date YYYY-MM-DD (defaults to today)")
	caseSheet.Flags().StringVar(&opts.Group, "group", "", "discussion group (defaults to settings group)")
	caseSheet.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")

	cmd.AddCommand(day)
	cmd.AddCommand(student)
	cmd.AddCommand(caseSheet)

	return cmd
}

// emit writes the rendered report to the output file or stdout.
func emit(opts *ReportOptions, cmd *cobra.Command, text string) error {
	if opts.Output == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	if err := os.WriteFile(opts.Output, []byte(text), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "write report", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.Output)
	return nil
}

// dayCase fetches the case block for a day report; a missing group or
// case simply omits the block.
func dayCase(ctx context.Context, st *store.Store, group, date string) (*model.Case, error) {
	if group == "" {
		return nil, nil
	}
	c, ok, err := st.CaseByGroupDate(ctx, group, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func runReportDay(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, cfg, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	settings, err := svc.Settings(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load settings", err)
	}
	settings = settingsWithDefaults(settings, cfg.Defaults)

	date := opts.Date
	if date == "" {
		date = model.Today()
	}
	group := opts.Group
	if group == "" {
		group = settings.Group
	}

	records, err := svc.ListRecordsForDay(ctx, date, group)
	if err != nil {
		return WrapExitError(ExitCommandError, "list records", err)
	}
	students, err := svc.Students(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "list students", err)
	}
	c, err := dayCase(ctx, st, group, date)
	if err != nil {
		return WrapExitError(ExitCommandError, "load case", err)
	}

	h := report.HeaderFromSettings(settings)
	h.Date = date
	if opts.Group != "" {
		h.Group = opts.Group
	}

	return emit(opts, cmd, report.Day(h, students, records, c))
}

func runReportStudent(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, cfg, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	settings, err := svc.Settings(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load settings", err)
	}
	settings = settingsWithDefaults(settings, cfg.Defaults)

	student, ok, err := svc.Student(ctx, opts.Student)
	if err != nil {
		return WrapExitError(ExitCommandError, "load student", err)
	}
	if !ok {
		return WrapExitError(ExitCommandError, fmt.Sprintf("student %s not found", opts.Student), nil)
	}

	records, err := svc.ListRecordsForStudent(ctx, opts.Student)
	if err != nil {
		return WrapExitError(ExitCommandError, "list records", err)
	}

	return emit(opts, cmd, report.StudentHistory(report.HeaderFromSettings(settings), student, records))
}

func runReportCase(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, cfg, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	settings, err := svc.Settings(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load settings", err)
	}
	settings = settingsWithDefaults(settings, cfg.Defaults)

	date := opts.Date
	if date == "" {
		date = model.Today()
	}
	group := opts.Group
	if group == "" {
		group = settings.Group
	}

	c, err := dayCase(ctx, st, group, date)
	if err != nil {
		return WrapExitError(ExitCommandError, "load case", err)
	}

	h := report.HeaderFromSettings(settings)
	h.Date = date
	if group != "" {
		h.Group = group
	}

	return emit(opts, cmd, report.CaseSheet(h, c))
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// SettingsOptions holds flags for the settings subcommands.
type SettingsOptions struct {
	*RootOptions
	Name       string
	Phone      string
	Discipline string
	Shift      string
	Location   string
	Class      string
	Group      string
	Date       string
}

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettingsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or edit the preceptor settings",
	}

	show := &cobra.Command{
		Use:           "show",
		Short:         "Show current settings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(opts, cmd)
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Edit settings fields",
		Long: `Edit settings fields. Only the flags given change; everything else
keeps its stored value.

Example:
  andy settings set --name "Dr. Andrade" --group G2 --date 2026-08-31`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(opts, cmd)
		},
	}
	set.Flags().StringVar(&opts.Name, "name", "", "preceptor name")
	set.Flags().StringVar(&opts.Phone, "phone", "", "preceptor phone")
	set.Flags().StringVar(&opts.Discipline, "discipline", "", "discipline label")
	set.Flags().StringVar(&opts.Shift, "shift", "", "shift label")
	set.Flags().StringVar(&opts.Location, "location", "", "location label")
	set.Flags().StringVar(&opts.Class, "class", "", "class label")
	set.Flags().StringVar(&opts.Group, "group", "", "discussion group label")
	set.Flags().StringVar(&opts.Date, "date", "", "active date (YYYY-MM-DD)")

	cmd.AddCommand(show)
	cmd.AddCommand(set)

	return cmd
}

func runSettingsShow(opts *SettingsOptions, cmd *cobra.Command) error {
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

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(settings)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Preceptor:  %s\n", settings.PreceptorName)
	fmt.Fprintf(out, "Phone:      %s\n", settings.PreceptorPhone)
	fmt.Fprintf(out, "Discipline: %s\n", settings.Discipline)
	fmt.Fprintf(out, "Shift:      %s\n", settings.Shift)
	fmt.Fprintf(out, "Location:   %s\n", settings.Location)
	fmt.Fprintf(out, "Class:      %s\n", settings.Class)
	fmt.Fprintf(out, "Group:      %s\n", settings.Group)
	fmt.Fprintf(out, "Date:       %s\n", settings.Date)
	return nil
}

func runSettingsSet(opts *SettingsOptions, cmd *cobra.Command) error {
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

	if cmd.Flags().Changed("name") {
		settings.PreceptorName = opts.Name
	}
	if cmd.Flags().Changed("phone") {
		settings.PreceptorPhone = opts.Phone
	}
	if cmd.Flags().Changed("discipline") {
		settings.Discipline = opts.Discipline
	}
	if cmd.Flags().Changed("shift") {
		settings.Shift = opts.Shift
	}
	if cmd.Flags().Changed("location") {
		settings.Location = opts.Location
	}
	if cmd.Flags().Changed("class") {
		settings.Class = opts.Class
	}
	if cmd.Flags().Changed("group") {
		settings.Group = opts.Group
	}
	if cmd.Flags().Changed("date") {
		settings.Date = opts.Date
	}

	saved, err := svc.SaveSettings(ctx, settings)
	if err != nil {
		return WrapExitError(ExitCommandError, "save settings", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(saved)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
	return nil
}

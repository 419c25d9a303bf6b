package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andyapp/andy/internal/model"
)

// CaseOptions holds flags for the case subcommands.
type CaseOptions struct {
	*RootOptions
	Group       string
	Date        string
	PatientCode string
	Sex         string
	Age         string
	Complaint   string
	History     string
	Findings    string
	Hypotheses  string
	Management  string
	StudyPoints string
}

// NewCaseCommand creates the case command group.
func NewCaseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CaseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "case",
		Short: "Track the anonymized clinical case of the day",
	}

	save := &cobra.Command{
		Use:   "save",
		Short: "Save the case of the day for one group",
		Long: `Save the case of the day for one group and date.

The case is resolved by (group, date) first, so saving again edits the
same case instead of creating a second one. The group is required: a
case is always owned by a discussion group.

Example:
  andy case save --group G2 --date 2026-08-31 --code "Pac-07" \
    --complaint "Dor torácica" --hypotheses "SCA; TEP"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCaseSave(opts, cmd)
		},
	}
	save.Flags().StringVar(&opts.Group, "group", "", "discussion group (defaults to settings group)")
	save.Flags().StringVar(&opts.Date, "date", "", "date YYYY-MM-DD (defaults to today)")
	save.Flags().StringVar(&opts.PatientCode, "code", "", "anonymized patient code")
	save.Flags().StringVar(&opts.Sex, "sex", "", "patient sex")
	save.Flags().StringVar(&opts.Age, "age", "", "patient age")
	save.Flags().StringVar(&opts.Complaint, "complaint", "", "chief complaint (QP)")
	save.Flags().StringVar(&opts.History, "history", "", "history of present illness (HDA)")
	save.Flags().StringVar(&opts.Findings, "findings", "", "exam findings")
	save.Flags().StringVar(&opts.Hypotheses, "hypotheses", "", "diagnostic hypotheses")
	save.Flags().StringVar(&opts.Management, "management", "", "management plan")
	save.Flags().StringVar(&opts.StudyPoints, "study", "", "points for study")

	show := &cobra.Command{
		Use:           "show",
		Short:         "Show the case of the day for one group",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCaseShow(opts, cmd)
		},
	}
	show.Flags().StringVar(&opts.Group, "group", "", "discussion group (defaults to settings group)")
	show.Flags().StringVar(&opts.Date, "date", "", "date YYYY-MM-DD (defaults to today)")

	cmd.AddCommand(save)
	cmd.AddCommand(show)

	return cmd
}

// caseKey fills group and date from settings and today when the flags
// were left out. The group may still end up empty; the service then
// refuses with MissingKey so the user is told to set the group first.
func caseKey(ctx context.Context, opts *CaseOptions, svc settingsSource) (group, date string, err error) {
	group = opts.Group
	date = opts.Date
	if group == "" {
		s, err := svc.Settings(ctx)
		if err != nil {
			return "", "", err
		}
		group = s.Group
	}
	if date == "" {
		date = model.Today()
	}
	return group, date, nil
}

// settingsSource is the slice of the service the case key helper needs.
type settingsSource interface {
	Settings(ctx context.Context) (model.Settings, error)
}

func runCaseSave(opts *CaseOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, _, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	group, date, err := caseKey(ctx, opts, svc)
	if err != nil {
		return WrapExitError(ExitCommandError, "load settings", err)
	}

	draft, err := svc.ResolveCase(ctx, group, date)
	if err != nil {
		return recordErr("resolve case", err)
	}

	if cmd.Flags().Changed("code") {
		draft.PatientCode = opts.PatientCode
	}
	if cmd.Flags().Changed("sex") {
		draft.Sex = opts.Sex
	}
	if cmd.Flags().Changed("age") {
		draft.Age = opts.Age
	}
	if cmd.Flags().Changed("complaint") {
		draft.ChiefComplaint = opts.Complaint
	}
	if cmd.Flags().Changed("history") {
		draft.History = opts.History
	}
	if cmd.Flags().Changed("findings") {
		draft.Findings = opts.Findings
	}
	if cmd.Flags().Changed("hypotheses") {
		draft.Hypotheses = opts.Hypotheses
	}
	if cmd.Flags().Changed("management") {
		draft.Management = opts.Management
	}
	if cmd.Flags().Changed("study") {
		draft.StudyPoints = opts.StudyPoints
	}

	saved, err := svc.SaveCase(ctx, draft)
	if err != nil {
		return recordErr("save case", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(saved)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved case of the day for group %s on %s\n", saved.Group, saved.Date)
	return nil
}

func runCaseShow(opts *CaseOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, _, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	group, date, err := caseKey(ctx, opts, svc)
	if err != nil {
		return WrapExitError(ExitCommandError, "load settings", err)
	}

	c, err := svc.ResolveCase(ctx, group, date)
	if err != nil {
		return recordErr("resolve case", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(c)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Case %s — group %s, %s\n", c.ID, c.Group, c.Date)
	fmt.Fprintf(out, "Código / Demografia: %s • %s • %s anos\n", c.PatientCode, c.Sex, c.Age)
	fmt.Fprintf(out, "QP: %s\n", c.ChiefComplaint)
	fmt.Fprintf(out, "HDA: %s\n", c.History)
	fmt.Fprintf(out, "Achados: %s\n", c.Findings)
	fmt.Fprintf(out, "Hipóteses: %s\n", c.Hypotheses)
	fmt.Fprintf(out, "Conduta: %s\n", c.Management)
	fmt.Fprintf(out, "Pontos para estudo: %s\n", c.StudyPoints)
	return nil
}

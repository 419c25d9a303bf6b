package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andyapp/andy/internal/logbook"
	"github.com/andyapp/andy/internal/model"
)

// RecordOptions holds flags for the record subcommands.
type RecordOptions struct {
	*RootOptions
	Student    string
	Date       string
	Attendance string
	Justified  string
	Makeup     string
	Notes      string
	Strengths  string
	ToImprove  string
	Study      string
	Message    string
	Scores     []string // criterion=value pairs
}

// NewRecordCommand creates the record command group.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Score a student's session",
	}

	save := &cobra.Command{
		Use:   "save",
		Short: "Save the evaluation of one student for one date",
		Long: `Save the evaluation of one student for one date.

The record for (student, date) is resolved first: if one exists it is
loaded and only the given flags change; otherwise a fresh record is
created with the current settings as context. Saving the same student
and date again always overwrites that one record.

Scores take criterion=value pairs; valid values are 0, 3 and 5 and
valid criteria are: ` + criteriaKeys() + `.

Example:
  andy record save --student 0192... --date 2026-08-31 \
    --score assiduidade=5 --score postura=3 --notes "Boa evolução"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordSave(opts, cmd)
		},
	}
	save.Flags().StringVar(&opts.Student, "student", "", "student identifier (required)")
	_ = save.MarkFlagRequired("student")
	save.Flags().StringVar(&opts.Date, "date", "", "date YYYY-MM-DD (defaults to today)")
	save.Flags().StringVar(&opts.Attendance, "attendance", "", "attendance status")
	save.Flags().StringVar(&opts.Justified, "justified", "", "absence justified (Sim|Não)")
	save.Flags().StringVar(&opts.Makeup, "makeup", "", "makeup class (Sim|Não)")
	save.Flags().StringVar(&opts.Notes, "notes", "", "day observations")
	save.Flags().StringVar(&opts.Strengths, "strengths", "", "strengths")
	save.Flags().StringVar(&opts.ToImprove, "improve", "", "areas to improve")
	save.Flags().StringVar(&opts.Study, "study", "", "study suggestion")
	save.Flags().StringVar(&opts.Message, "message", "", "message to the student")
	save.Flags().StringArrayVar(&opts.Scores, "score", nil, "criterion=value score (repeatable)")

	show := &cobra.Command{
		Use:           "show",
		Short:         "Show the evaluation of one student for one date",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordShow(opts, cmd)
		},
	}
	show.Flags().StringVar(&opts.Student, "student", "", "student identifier (required)")
	_ = show.MarkFlagRequired("student")
	show.Flags().StringVar(&opts.Date, "date", "", "date YYYY-MM-DD (defaults to today)")

	history := &cobra.Command{
		Use:           "history",
		Short:         "List all evaluations of one student, newest first",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordHistory(opts, cmd)
		},
	}
	history.Flags().StringVar(&opts.Student, "student", "", "student identifier (required)")
	_ = history.MarkFlagRequired("student")

	cmd.AddCommand(save)
	cmd.AddCommand(show)
	cmd.AddCommand(history)

	return cmd
}

// criteriaKeys joins the criterion keys for help text.
func criteriaKeys() string {
	keys := make([]string, len(model.Criteria))
	for i, c := range model.Criteria {
		keys[i] = c.Key
	}
	return strings.Join(keys, ", ")
}

// parseScoreFlags parses repeated criterion=value pairs.
func parseScoreFlags(pairs []string) (map[string]int, error) {
	scores := make(map[string]int, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --score %q: want criterion=value", p)
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid --score %q: %w", p, err)
		}
		scores[key] = n
	}
	return scores, nil
}

func runRecordSave(opts *RecordOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	scores, err := parseScoreFlags(opts.Scores)
	if err != nil {
		return WrapExitError(ExitCommandError, "parse scores", err)
	}

	st, svc, _, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	date := opts.Date
	if date == "" {
		date = model.Today()
	}

	draft, err := svc.ResolveRecord(ctx, opts.Student, date)
	if err != nil {
		return recordErr("resolve record", err)
	}

	if cmd.Flags().Changed("attendance") {
		draft.Attendance = opts.Attendance
	}
	if cmd.Flags().Changed("justified") {
		draft.Justified = opts.Justified
	}
	if cmd.Flags().Changed("makeup") {
		draft.Makeup = opts.Makeup
	}
	if cmd.Flags().Changed("notes") {
		draft.DayNotes = opts.Notes
	}
	if cmd.Flags().Changed("strengths") {
		draft.Strengths = opts.Strengths
	}
	if cmd.Flags().Changed("improve") {
		draft.ToImprove = opts.ToImprove
	}
	if cmd.Flags().Changed("study") {
		draft.StudySuggestion = opts.Study
	}
	if cmd.Flags().Changed("message") {
		draft.Message = opts.Message
	}
	for key, val := range scores {
		v := val
		draft.Scores[key] = &v
	}

	saved, err := svc.SaveRecord(ctx, draft)
	if err != nil {
		return recordErr("save record", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(saved)
	}
	if sc, ok := logbook.ComputeScore(saved); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved record for %s (score %d/%d, grade %.1f)\n",
			saved.Date, sc.Sum, model.MaxScore(), sc.Grade)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved record for %s (unscored)\n", saved.Date)
	}
	return nil
}

func runRecordShow(opts *RecordOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, _, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	date := opts.Date
	if date == "" {
		date = model.Today()
	}

	rec, err := svc.ResolveRecord(ctx, opts.Student, date)
	if err != nil {
		return recordErr("resolve record", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(rec)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Record %s\n", rec.ID)
	fmt.Fprintf(out, "Student: %s  Date: %s\n", rec.StudentID, rec.Date)
	fmt.Fprintf(out, "Context: turma=%s grupo=%s turno=%s local=%s\n", rec.Class, rec.Group, rec.Shift, rec.Location)
	fmt.Fprintf(out, "Attendance: %s (justified=%s, makeup=%s)\n", rec.Attendance, rec.Justified, rec.Makeup)
	for _, c := range model.Criteria {
		if v := rec.Scores[c.Key]; v != nil {
			fmt.Fprintf(out, "  %-20s %d\n", c.Label, *v)
		} else {
			fmt.Fprintf(out, "  %-20s —\n", c.Label)
		}
	}
	if sc, ok := logbook.ComputeScore(rec); ok {
		fmt.Fprintf(out, "Score: %d/%d  Grade: %.1f\n", sc.Sum, model.MaxScore(), sc.Grade)
	} else {
		fmt.Fprintln(out, "Score: — (unscored)")
	}
	if rec.DayNotes != "" {
		fmt.Fprintf(out, "Notes: %s\n", rec.DayNotes)
	}
	return nil
}

func runRecordHistory(opts *RecordOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, _, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := svc.ListRecordsForStudent(ctx, opts.Student)
	if err != nil {
		return WrapExitError(ExitCommandError, "list records", err)
	}

	// Newest first.
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date > records[j].Date })

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records yet.")
		return nil
	}
	for _, r := range records {
		if sc, ok := logbook.ComputeScore(r); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  score %d/%d  grade %.1f\n",
				r.Date, r.Attendance, sc.Sum, model.MaxScore(), sc.Grade)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  unscored\n", r.Date, r.Attendance)
		}
	}
	return nil
}

// recordErr maps service errors onto CLI exit codes: a missing key is
// an operation refusal, everything else is a command error.
func recordErr(msg string, err error) error {
	if logbook.IsMissingKey(err) {
		return WrapExitError(ExitFailure, msg, err)
	}
	return WrapExitError(ExitCommandError, msg, err)
}

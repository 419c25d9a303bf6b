package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StudentOptions holds flags for the student subcommands.
type StudentOptions struct {
	*RootOptions
	Name         string
	Registration string
	Phone        string
}

// NewStudentCommand creates the student command group.
func NewStudentCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage the student roster",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a student to the roster",
		Long: `Add a student to the roster.

Example:
  andy student add --name "Maria Souza" --registration 2024018 --phone "+55 11 90000-0000"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudentAdd(opts, cmd)
		},
	}
	add.Flags().StringVar(&opts.Name, "name", "", "student name (required)")
	_ = add.MarkFlagRequired("name")
	add.Flags().StringVar(&opts.Registration, "registration", "", "registration number")
	add.Flags().StringVar(&opts.Phone, "phone", "", "phone number")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List the roster ordered by name",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudentList(opts, cmd)
		},
	}

	cmd.AddCommand(add)
	cmd.AddCommand(list)

	return cmd
}

func runStudentAdd(opts *StudentOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, _, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	student, err := svc.AddStudent(ctx, opts.Name, opts.Registration, opts.Phone)
	if err != nil {
		return WrapExitError(ExitCommandError, "add student", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(student)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created student %s (%s)\n", student.Name, student.ID)
	return nil
}

func runStudentList(opts *StudentOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, svc, _, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	students, err := svc.Students(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "list students", err)
	}

	// Roster order: pt-BR collation handles accented names.
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(students, func(i, j int) bool {
		return c.CompareString(students[i].Name, students[j].Name) < 0
	})

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(students)
	}

	if len(students) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No students yet. Use 'andy student add'.")
		return nil
	}
	for _, s := range students {
		reg := s.Registration
		if reg == "" {
			reg = "—"
		}
		phone := s.Phone
		if phone == "" {
			phone = "—"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (mat. %s, tel. %s)\n", s.ID, s.Name, reg, phone)
	}
	return nil
}

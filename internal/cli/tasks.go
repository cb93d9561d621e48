package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yukikurage/design-tracker/internal/form"
	"github.com/yukikurage/design-tracker/internal/models"
	"github.com/yukikurage/design-tracker/internal/view"
)

func newTasksCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage design tasks",
	}
	cmd.AddCommand(
		newTasksListCommand(opts),
		newTasksGetCommand(opts),
		newTasksLinkCommand(opts),
		newTasksCreateCommand(opts),
		newTasksUpdateCommand(opts),
		newTasksDeleteCommand(opts),
	)
	return cmd
}

func newTasksListCommand(opts *globalOptions) *cobra.Command {
	var flags struct {
		Search string
		Status string
		Tag    string
		Type   string
		Sort   string
		Asc    bool
		JSON   bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks as the table shows them.

Examples:
  # Tasks in review, oldest delivery first
  tracker tasks list --status "In review" --sort delivery --asc

  # Search name, description and assignee
  tracker tasks list --search onboarding`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(view.SortableFields, flags.Sort) {
				return fmt.Errorf("unknown sort field %q (want one of %s)", flags.Sort, strings.Join(view.SortableFields, ", "))
			}

			m := view.NewModel(opts.logger(false))
			if err := m.Refresh(cmd.Context(), opts.client()); err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
			m.Criteria = view.Criteria{
				Search: flags.Search,
				Status: flags.Status,
				Tag:    flags.Tag,
				Type:   flags.Type,
			}
			m.SortField = flags.Sort
			m.SortDir = view.Descending
			if flags.Asc {
				m.SortDir = view.Ascending
			}

			tasks := m.Visible()
			if flags.JSON {
				return writeJSON(cmd.OutOrStdout(), tasks)
			}
			printTaskTable(cmd.OutOrStdout(), tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.Search, "search", "", "Case-insensitive match on name, description or assignee")
	cmd.Flags().StringVar(&flags.Status, "status", view.All, "Only tasks with this status")
	cmd.Flags().StringVar(&flags.Tag, "tag", view.All, "Only tasks with this tag")
	cmd.Flags().StringVar(&flags.Type, "type", view.All, "Only tasks of this type")
	cmd.Flags().StringVar(&flags.Sort, "sort", models.FieldUpdatedAt, "Sort field")
	cmd.Flags().BoolVar(&flags.Asc, "asc", false, "Sort ascending")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output JSON")
	return cmd
}

func newTasksGetCommand(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.client().GetTask(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), task)
			}
			printTaskDetail(cmd.OutOrStdout(), *task)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newTasksLinkCommand(opts *globalOptions) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "link <id>",
		Short: "Print a shareable link that opens the task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.client().GetTask(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}
			m := view.NewModel(opts.logger(false))
			m.OpenEdit(*task)
			link, err := m.Link(base)
			if err != nil {
				return fmt.Errorf("invalid base URL: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "http://localhost:3000/", "Base URL of the web client")
	return cmd
}

// taskFlags are the editable task fields shared by create and update.
type taskFlags struct {
	name        string
	description string
	status      string
	taskType    string
	tag         string
	delivery    string
	attachFile  string
	productDoc  string
	assignee    []string
	receivedBy  []string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Task name")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.status, "status", "", "Status: "+strings.Join(models.TaskStatuses, ", "))
	fs.StringVar(&f.taskType, "type", "", "Type: "+strings.Join(models.TaskTypes, ", "))
	fs.StringVar(&f.tag, "tag", "", "Tag: "+strings.Join(models.TaskTags, ", "))
	fs.StringVar(&f.delivery, "delivery", "", "Delivery date (YYYY-MM-DD)")
	fs.StringVar(&f.attachFile, "attach-file", "", "Design file link")
	fs.StringVar(&f.productDoc, "product-doc", "", "Product document link")
	fs.StringSliceVar(&f.assignee, "assignee", nil, "Assignee names (repeatable or comma separated)")
	fs.StringSliceVar(&f.receivedBy, "received-by", nil, "Receiver names (repeatable or comma separated)")
}

// apply copies the flags the user set onto the form.
func (f *taskFlags) apply(cmd *cobra.Command, fm *form.Form) {
	changed := cmd.Flags().Changed
	set := func(flag string, dst *string, value string) {
		if changed(flag) {
			*dst = value
		}
	}
	set("name", &fm.Draft.TaskName, f.name)
	set("description", &fm.Draft.Description, f.description)
	set("status", &fm.Draft.Status, f.status)
	set("type", &fm.Draft.TaskType, f.taskType)
	set("tag", &fm.Draft.Tags, f.tag)
	set("delivery", &fm.Draft.Delivery, f.delivery)
	set("attach-file", &fm.Draft.AttachFile, f.attachFile)
	set("product-doc", &fm.Draft.ProductDoc, f.productDoc)
	if changed("assignee") {
		fm.Assignee.Selected = models.ParseNames(strings.Join(f.assignee, ","))
	}
	if changed("received-by") {
		fm.ReceivedBy.Selected = models.ParseNames(strings.Join(f.receivedBy, ","))
	}
}

func newTasksCreateCommand(opts *globalOptions) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Long: `Create a task. Unset fields take the form defaults
(status "Not started", type "Feature", tag "Tintin").

Examples:
  tracker tasks create --name "Home Screen Re-work" --tag Nexus --assignee "Akash Roy"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fm := form.New(nil, nil)
			flags.apply(cmd, fm)

			task, err := fm.Submit(cmd.Context(), opts.client(), nil)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", task.ID, task.TaskName)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newTasksUpdateCommand(opts *globalOptions) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a task",
		Long: `Edit a task. The current task is loaded, the given flags are
applied and the whole form is saved.

Examples:
  tracker tasks update 1f0c... --status "In review" --received-by "Kunal Verma"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			current, err := c.GetTask(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}

			fm := form.New(current, nil)
			flags.apply(cmd, fm)

			task, err := fm.Submit(cmd.Context(), c, nil)
			if err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", task.ID, task.TaskName)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newTasksDeleteCommand(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fm := form.New(&models.Task{ID: args[0]}, nil)
			confirm := func(prompt string) bool {
				if yes {
					return true
				}
				return askYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
			}

			err := fm.Delete(cmd.Context(), opts.client(), confirm, nil)
			if errors.Is(err, form.ErrNotConfirmed) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

// askYesNo prompts on out and reads one answer from in. Anything but y or
// yes, including EOF, is a no.
func askYesNo(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	_, _ = fmt.Fprintln(out)
	return false
}

func cellValue(value string) string {
	if value == "" {
		return view.EmptyCell
	}
	return value
}

func printTaskTable(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tTYPE\tTAG\tASSIGNEE\tDELIVERY\tUPDATED")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			cellValue(t.TaskName),
			cellValue(t.Status),
			cellValue(t.TaskType),
			cellValue(t.Tags),
			cellValue(t.Assignee),
			view.FormatDate(t.Delivery),
			view.FormatTime(t.UpdatedAt),
		)
	}
}

func printTaskDetail(w io.Writer, t models.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	rows := []struct{ label, value string }{
		{"ID", t.ID},
		{"Name", cellValue(t.TaskName)},
		{"Description", cellValue(t.Description)},
		{"Status", cellValue(t.Status)},
		{"Type", cellValue(t.TaskType)},
		{"Tag", cellValue(t.Tags)},
		{"Assignee", cellValue(t.Assignee)},
		{"Received by", cellValue(t.ReceivedBy)},
		{"Delivery", view.FormatDate(t.Delivery)},
		{"Attachment", cellValue(t.AttachFile)},
		{"Product doc", cellValue(t.ProductDoc)},
		{"Created", view.FormatTime(t.CreatedAt)},
		{"Updated", view.FormatTime(t.UpdatedAt)},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", r.label, r.value)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

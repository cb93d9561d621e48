package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yukikurage/design-tracker/internal/tui"
)

func newUICommand(opts *globalOptions) *cobra.Command {
	var openID string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Launch the interactive task table",
		Long: `Launch the terminal UI. Logs go only to --log-file while it runs.

Use --open with a task id to open that task once the list has loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), opts, openID)
		},
	}
	cmd.Flags().StringVar(&openID, "open", "", "Task id to open on start")
	return cmd
}

func launchTUI(ctx context.Context, opts *globalOptions, openID string) error {
	model := tui.New(ctx, opts.client(), opts.logger(true), openID)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

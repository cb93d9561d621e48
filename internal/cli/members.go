package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yukikurage/design-tracker/internal/client"
)

func newMembersCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Manage the member roster",
	}
	cmd.AddCommand(newMembersListCommand(opts), newMembersAddCommand(opts))
	return cmd
}

func newMembersListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List member names",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := opts.client().ListMembers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newMembersAddCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a member to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			added, err := opts.client().AddMember(cmd.Context(), name)
			if errors.Is(err, client.ErrConflict) {
				return fmt.Errorf("member %q already exists", name)
			}
			if err != nil {
				return fmt.Errorf("failed to add member: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added member %s\n", added)
			return nil
		},
	}
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/kanban-api/internal/board"
)

// newColumnCmd creates the column command group
func newColumnCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Add, rename or remove columns",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, func(s *session) error {
				return s.apply(cmd.Context(), board.AddColumn{Name: strings.Join(args, " ")})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <column-id> <name>",
		Short: "Rename a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "column")
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), opts, func(s *session) error {
				return s.apply(cmd.Context(), board.RenameColumn{ID: id, Name: strings.Join(args[1:], " ")})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <column-id>",
		Aliases: []string{"delete"},
		Short:   "Remove a column and every task in it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "column")
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), opts, func(s *session) error {
				return s.apply(cmd.Context(), board.DeleteColumn{ID: id})
			})
		},
	})

	return cmd
}

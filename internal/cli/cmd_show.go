package cli

import "github.com/spf13/cobra"

// newShowCmd creates the show command
func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), opts, func(s *session) error {
				s.render()
				return nil
			})
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/kanban-api/internal/events"
)

// newWatchCmd creates the watch command
func newWatchCmd(opts *options) *cobra.Command {
	var redisURL, channel string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the board whenever it changes",
		Long: `watch subscribes to the board event channel the server publishes to and
reloads the board on every event. The server must run with redis.url set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := events.NewRedisClient(redisURL)
			if err != nil {
				return fmt.Errorf("connect to redis: %w", err)
			}
			defer func() { _ = rc.Close() }()

			ctx := cmd.Context()
			return withSession(ctx, opts, func(s *session) error {
				s.render()
				return events.Subscribe(ctx, rc, channel, opts.logger, func(event *events.BoardEvent) {
					if err := s.reconciler.Reload(ctx); err != nil {
						opts.logger.Warn("failed to reload board", "event_type", event.Type, "error", err)
						return
					}
					s.render()
				})
			})
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis-url", "redis://localhost:6379", "Redis URL the server publishes events to")
	cmd.Flags().StringVar(&channel, "channel", "kanban:events", "board event channel")
	return cmd
}

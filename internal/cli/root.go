// Package cli implements the boardctl command-line interface.
//
// Each command loads the board from the API, dispatches one intent through
// the reconciler, waits for its result and renders the board.
package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phrazzld/kanban-api/internal/client"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
)

// EnvPrefix is the prefix for environment overrides, e.g. KANBAN_API_URL.
const EnvPrefix = "KANBAN"

// DefaultAPIURL is where boardctl looks for the API unless told otherwise.
const DefaultAPIURL = "http://localhost:5000"

// options are the resolved global flags.
type options struct {
	apiURL    string
	prefsPath string
	timeout   time.Duration
	logLevel  string

	out    io.Writer
	logger *slog.Logger
}

// NewRootCmd builds the boardctl command tree.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "boardctl",
		Short: "Manage a kanban board from the terminal",
		Long: `boardctl edits a kanban board served by the board API.

Quick start:
  boardctl show                         Render the board
  boardctl column add "Todo"            Add a column
  boardctl task add 1 "Write spec"      Add a task to column 1
  boardctl task move 1 2                Move task 1 to column 2
  boardctl theme toggle                 Switch between dark and light mode`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.apiURL = v.GetString("api_url")
			opts.prefsPath = v.GetString("prefs")
			opts.timeout = v.GetDuration("timeout")
			opts.logLevel = v.GetString("log_level")
			opts.out = cmd.OutOrStdout()

			level, _ := logger.ParseLevel(opts.logLevel)
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("api-url", DefaultAPIURL, "board API base URL (env KANBAN_API_URL)")
	flags.String("prefs", "", "preferences file (default $XDG_CONFIG_HOME/kanban/prefs.yaml)")
	flags.Duration("timeout", client.DefaultTimeout, "per-request timeout")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")

	for key, flag := range map[string]string{
		"api_url":   "api-url",
		"prefs":     "prefs",
		"timeout":   "timeout",
		"log_level": "log-level",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newColumnCmd(opts))
	rootCmd.AddCommand(newTaskCmd(opts))
	rootCmd.AddCommand(newThemeCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))

	return rootCmd
}

// Execute runs the boardctl command tree. Cancelling ctx stops long-running
// commands such as watch.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

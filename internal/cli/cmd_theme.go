package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newThemeCmd creates the theme command
func newThemeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|dark|light]",
		Short:     "Show or change the colour theme",
		Long:      "Without an argument, prints the current theme. The choice is saved to the preferences file.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle", "dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := prefsPath(opts)
			if err != nil {
				return err
			}
			p, err := loadPrefs(opts)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				switch args[0] {
				case "toggle":
					p.ToggleDarkMode()
				case "dark":
					p.DarkMode = true
				case "light":
					p.DarkMode = false
				}
				if err := p.Save(path); err != nil {
					return err
				}
			}

			fmt.Fprintf(opts.out, "theme: %s\n", ThemeFor(p).Name)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version, typically
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the griddeck CLI. The bare root command starts the dashboard
// TUI; layouts subcommands operate on the persistence backend directly.
func Execute() error {
	var (
		verbose bool
		cfgFile string
	)

	root := &cobra.Command{
		Use:          "griddeck",
		Short:        "griddeck is a keyboard-driven widget dashboard",
		Long:         `griddeck arranges widgets on a collision-free grid across panels, with drag-and-drop rearrangement, undoable edits, and persistent named layouts.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), cfgFile, cmd.Flags())
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("griddeck %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().String("backend", "", "persistence backend (file, redis, memory)")
	root.PersistentFlags().String("data-dir", "", "layout directory for the file backend")
	root.PersistentFlags().String("redis-addr", "", "redis address for the redis backend")
	root.PersistentFlags().String("owner", "", "owner id for layout storage")

	root.AddCommand(newLayoutsCmd(&cfgFile))

	return root.ExecuteContext(context.Background())
}

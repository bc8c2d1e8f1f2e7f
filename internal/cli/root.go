// Package cli implements the surfhull command-line interface.
//
// # Commands
//
//   - generate: build every hull part of a board and write meshes and previews
//   - check: resolve and validate a parameter file without generating
//
// Parameters come from a TOML file (.toml) or a Lisp parameter script
// (any other extension). All commands support --verbose (-v) for
// debug-level logging; the logger travels through context.Context.
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

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the surfhull CLI with ctx and returns the first command
// error.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "surfhull",
		Short:        "surfhull generates parametric surfboard hull geometry",
		Long:         `surfhull builds the outline, rails, shell, cage, ribs and center rib of a surfboard from a small set of numeric parameters.`,
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
	}

	root.SetVersionTemplate(fmt.Sprintf("surfhull %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	return root
}

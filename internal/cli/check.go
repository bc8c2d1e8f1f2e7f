package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var (
		path string
		sets []string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve and validate board parameters",
		Long: `Resolve a parameter file or script, apply overrides and validate every
range. Missing parameters are reported together. Nothing is generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := resolveBoard(path, sets)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printBoard(w, b)
			printSuccess(w, "%d stations, parameters valid", b.Stations())
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "params", "p", "", "parameter file (.toml) or script")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a parameter (name=value, repeatable)")
	_ = cmd.MarkFlagRequired("params")

	return cmd
}

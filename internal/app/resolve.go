package app

import (
	"github.com/spf13/cobra"
)

func NewResolveCmd(mgr Manager) *cobra.Command {
	outputVal := formatValue("text")

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show how c_formatter_42 would be invoked",
		Long: `Walk the resolution strategies (override, PATH, importable Python module,
well-known install directories, Homebrew) and print the winning execution
plan together with every location that was probed.`,
		Args: cobra.NoArgs,
		Example: `
norm42 resolve
norm42 resolve --output json
norm42 --formatter /opt/tools/c_formatter_42 resolve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColour, _ := cmd.Flags().GetBool("nocolour")

			return mgr.Resolve(cmd.Context(), FormatOptions{
				Format:    string(outputVal),
				UseColour: !noColour,
			})
		},
	}

	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	return cmd
}

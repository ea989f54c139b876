package app

import (
	"github.com/spf13/cobra"
)

func NewWatchCmd(mgr Manager) *cobra.Command {
	var enhanced bool
	var noHeader bool
	var verbose bool
	var login string
	var email string

	outputVal := formatValue("text")
	extraEnv := newEnvValue()

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a directory and format C sources on save",
		Long: `Monitor a directory tree for changes to .c and .h files and format each
changed file as it is saved. Runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		Example: `
norm42 watch
norm42 watch --enhanced ./src`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			noColour, _ := cmd.Flags().GetBool("nocolour")

			return mgr.Watch(cmd.Context(), dir, FormatOptions{
				Enhanced:  enhanced,
				NoHeader:  noHeader,
				Verbose:   verbose,
				Format:    string(outputVal),
				UseColour: !noColour,
				Login:     login,
				Email:     email,
				ExtraEnv:  extraEnv.vars,
			}, nil)
		},
	}

	cmd.Flags().BoolVarP(&enhanced, "enhanced", "e", false, "Use the built-in rule engine instead of c_formatter_42")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Skip the 42 header pass")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show per-pass results")
	cmd.Flags().StringVar(&login, "login", "", "Login for the header author fields")
	cmd.Flags().StringVar(&email, "email", "", "Email for the header author fields")
	cmd.Flags().Var(extraEnv, "env", "Extra environment for the formatter process (repeatable)")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	return cmd
}

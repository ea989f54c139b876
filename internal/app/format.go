package app

import (
	"github.com/spf13/cobra"
)

func NewFormatCmd(mgr Manager) *cobra.Command {
	var enhanced bool
	var check bool
	var noHeader bool
	var confirm bool
	var verbose bool
	var login string
	var email string

	outputVal := formatValue("text")
	extraEnv := newEnvValue()

	cmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Format C source files",
		Long: `Format C source files with c_formatter_42, or with the built-in rule engine
when --enhanced is set. Each file is rewritten in place only after its run
succeeds; a failing run leaves the file untouched. With no files, one source
is read from stdin and the result written to stdout.`,
		Example: `
norm42 format src/main.c src/utils.c
norm42 format --enhanced --login mrichard src/main.c
norm42 format --check src/main.c
norm42 format < src/main.c`,
		RunE: func(cmd *cobra.Command, args []string) error {
			noColour, _ := cmd.Flags().GetBool("nocolour")

			opts := FormatOptions{
				Enhanced:  enhanced,
				Check:     check,
				NoHeader:  noHeader,
				Confirm:   confirm,
				Verbose:   verbose,
				Format:    string(outputVal),
				UseColour: !noColour,
				Login:     login,
				Email:     email,
				ExtraEnv:  extraEnv.vars,
			}

			if len(args) == 0 {
				return mgr.FormatStream(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			}
			return mgr.FormatFiles(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVarP(&enhanced, "enhanced", "e", false, "Use the built-in rule engine instead of c_formatter_42")
	cmd.Flags().BoolVar(&check, "check", false, "Report files that would change without writing anything")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Skip the 42 header pass")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Ask before overwriting each file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show per-pass results")
	cmd.Flags().StringVar(&login, "login", "", "Login for the header author fields")
	cmd.Flags().StringVar(&email, "email", "", "Email for the header author fields")
	cmd.Flags().Var(extraEnv, "env", "Extra environment for the formatter process (repeatable)")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	return cmd
}

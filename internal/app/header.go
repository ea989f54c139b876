package app

import (
	"github.com/spf13/cobra"
)

func NewHeaderCmd(mgr Manager) *cobra.Command {
	var verbose bool
	var login string
	var email string

	outputVal := formatValue("text")

	cmd := &cobra.Command{
		Use:   "header [files...]",
		Short: "Insert or refresh the 42 header",
		Long: `Run only the 42 header pass: insert a header where none exists and refresh
the Updated line where one does. The rest of the source is left untouched.`,
		Args: cobra.MinimumNArgs(1),
		Example: `
norm42 header src/main.c
norm42 header --login mrichard --email mrichard@student.42.fr src/*.c`,
		RunE: func(cmd *cobra.Command, args []string) error {
			noColour, _ := cmd.Flags().GetBool("nocolour")

			return mgr.EnsureHeaders(cmd.Context(), args, FormatOptions{
				Verbose:   verbose,
				Format:    string(outputVal),
				UseColour: !noColour,
				Login:     login,
				Email:     email,
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show per-pass results")
	cmd.Flags().StringVar(&login, "login", "", "Login for the header author fields")
	cmd.Flags().StringVar(&email, "email", "", "Email for the header author fields")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	return cmd
}

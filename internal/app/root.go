package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/norm42-dev/norm42/internal/config"
	"github.com/norm42-dev/norm42/internal/fsh"
	"github.com/norm42-dev/norm42/internal/identity"
	"github.com/norm42-dev/norm42/internal/resolver"
	"github.com/norm42-dev/norm42/internal/runner"
)

// Version is the current version of norm42, set at build time.
var Version = "dev"

const InitCmdName = "init"

// Banner with colour codes and escaped backticks.
var Banner = "\033[32m" + `
                                       __ __   ___
   ____   ____    _____   ____ ___    / // /  |__ \
  / __ \ / __ \  / ___/  / __ ` + "`" + `__ \  /_  __/  __/ /
 / / / // /_/ / / /     / / / / / /   /_/    / __/
/_/ /_/ \____/ /_/     /_/ /_/ /_/          /____/
` + "\033[0m"

var LongDescription = `
norm42 rewrites C source files towards the 42 school norm. It normalises
indentation, splits declarations from their initialisations, fixes brace and
blank-line placement and maintains the 42 header, using either its built-in
rule engine or the external c_formatter_42 tool, which it locates across pip,
pipx, virtualenv and Homebrew installs.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer, envProvider fsh.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	configPath := pathValue("")
	formatterPath := pathValue("")

	rootCmd := &cobra.Command{
		Use:           "norm42",
		Short:         "A formatter for C sources following the 42 norm",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          Banner + "\n" + LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help, completion and init commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitCmdName {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			// 2. Build Dependencies
			cfg, err := config.Load(string(configPath), envProvider)
			if err != nil {
				return fmt.Errorf("configuration load failed: %w", err)
			}

			logger, _, err := setupLogger(stderr, ll, envProvider)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			// 3. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, cfg,
				resolver.NewChain(envProvider), runner.New(),
				identity.NewCLIIdentifier(envProvider), envProvider,
				string(formatterPath))
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Var(&configPath, "config", "path to the config file (overrides discovery)")
	rootCmd.PersistentFlags().Var(&formatterPath, "formatter", "path to the c_formatter_42 executable")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColour", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColour")

	// Subcommands
	rootCmd.AddCommand(NewFormatCmd(lazy))
	rootCmd.AddCommand(NewHeaderCmd(lazy))
	rootCmd.AddCommand(NewResolveCmd(lazy))
	rootCmd.AddCommand(NewWatchCmd(lazy))
	rootCmd.AddCommand(NewInitCmd(fsh.NewPathResolver()))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}

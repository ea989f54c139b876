package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/norm42-dev/norm42/internal/config"
	"github.com/norm42-dev/norm42/internal/fsh"
)

// NewInitCmd returns a new cobra command writing a default configuration.
func NewInitCmd(pathResolver fsh.PathResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   InitCmdName + " [dirpath]",
		Short: "Write a default norm42 configuration",
		Long:  `Create the directory if needed and write a commented default ` + config.ConfigFileName + ` into it.`,
		Args:  cobra.MaximumNArgs(1),
		Example: `
norm42 init
norm42 init ./my-project
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirpath := "."
			if len(args) > 0 {
				dirpath = args[0]
			}

			// 1. Create directory if it doesn't exist
			if err := os.MkdirAll(dirpath, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

			configPath := filepath.Join(dirpath, config.ConfigFileName)

			// 2. Check if config file already exists
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("configuration already exists: %s", configPath)
			}

			// 3. Write default config
			if err := os.WriteFile(configPath, []byte(config.DefaultConfigContent), 0o600); err != nil {
				return fmt.Errorf("failed to write configuration file: %w", err)
			}

			abs, err := pathResolver.Abs(configPath)
			if err != nil {
				abs = configPath
			}

			cmd.Printf("Created %s\n", abs)
			cmd.Println("\nEdit the login and email keys to set your 42 header identity, or run")
			cmd.Printf("  norm42 format -h\nto see what can be overridden per invocation.\n")

			return nil
		},
	}

	return cmd
}

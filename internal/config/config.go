package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/norm42-dev/norm42/internal/fsh"
)

const ConfigFileName = ".norm42.yml"

// ConfigPathEnvVar overrides config file discovery when set.
const ConfigPathEnvVar = "NORM42_CONFIG"

// FormatterPathEnvVar overrides the formatter location. It ranks below the
// --formatter flag and above the formatterPath config key.
const FormatterPathEnvVar = "C_FORMATTER_42_PATH"

const DefaultConfigContent = `# norm42 configuration

# FORMATTER LOCATION
#
# norm42 searches for c_formatter_42 automatically (PATH, importable python
# module, pipx venv, user site installs, active virtualenv, Homebrew). Set
# formatterPath to pin an exact executable instead. A formatterPath that does
# not point at a runnable formatter is an error, never a silent fallback.
# The C_FORMATTER_42_PATH environment variable takes precedence over this key.
formatterPath: ""

# HEADER IDENTITY
#
# Used for the author fields of the 42 header. When empty, login falls back
# to $USER, and email to git config user.email, then login@student.42.fr.
login: ""
email: ""

# INDENTATION
#
# Number of leading spaces that equal one tab stop when normalising
# indentation. The 42 norm uses 4. Valid range: 1-8.
indentWidth: 4

# MODE
#
# enhanced: true makes norm42 format default to the built-in rule engine
# instead of invoking the external formatter. skipHeaders: true disables the
# 42 header pass entirely.
enhanced: false
skipHeaders: false

# EXTRA ENVIRONMENT
#
# Environment variables passed through to the external formatter process.
# e.g.
#   env:
#     PYTHONWARNINGS: ignore
env: {}
`

const (
	DefaultIndentWidth = 4
	minIndentWidth     = 1
	maxIndentWidth     = 8
)

type Config struct {
	FormatterPath string            `yaml:"formatterPath"`
	Login         string            `yaml:"login"`
	Email         string            `yaml:"email"`
	IndentWidth   int               `yaml:"indentWidth"`
	Enhanced      bool              `yaml:"enhanced"`
	SkipHeaders   bool              `yaml:"skipHeaders"`
	Env           map[string]string `yaml:"env"`
	Path          string            // this is set for convenience when the file is read in.
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{IndentWidth: DefaultIndentWidth}
}

// Load finds and parses the configuration. Precedence: the explicit path (from
// --config), then NORM42_CONFIG, then ./.norm42.yml, then $HOME/.norm42.yml.
// An explicitly named file that is missing is an error; absent discovery
// locations fall through to the built-in defaults.
func Load(explicitPath string, env fsh.EnvProvider) (*Config, error) {
	if explicitPath != "" {
		return loadFile(explicitPath)
	}
	if p := env.Get(ConfigPathEnvVar); p != "" {
		return loadFile(p)
	}

	candidates := []string{ConfigFileName}
	if home := env.Get("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ConfigFileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return loadFile(p)
		}
	}

	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &MissingConfigError{Path: path}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}

	if vErr := config.Validate(); vErr != nil {
		return nil, vErr
	}

	config.Path = path
	return config, nil
}

func (c *Config) Validate() error {
	if c.IndentWidth == 0 {
		c.IndentWidth = DefaultIndentWidth
	}
	if c.IndentWidth < minIndentWidth || c.IndentWidth > maxIndentWidth {
		return &InvalidIndentWidthError{Value: c.IndentWidth}
	}

	if err := validateIdentityField("login", c.Login); err != nil {
		return err
	}
	if err := validateIdentityField("email", c.Email); err != nil {
		return err
	}

	for key := range c.Env {
		if key == "" || strings.ContainsAny(key, "= \t\n") {
			return &InvalidEnvKeyError{Key: key}
		}
	}

	return nil
}

// FormatterOverride returns the effective formatter override path, combining
// the flag value, the environment and the config key in precedence order.
// An empty result means no override is in force.
func (c *Config) FormatterOverride(flagValue string, env fsh.EnvProvider) string {
	if flagValue != "" {
		return flagValue
	}
	if p := env.Get(FormatterPathEnvVar); p != "" {
		return p
	}
	return c.FormatterPath
}

// validateIdentityField rejects values that would break out of the single
// header line they are rendered into.
func validateIdentityField(prop, val string) error {
	if strings.ContainsAny(val, "\r\n") {
		return &InvalidIdentityError{Property: prop, Value: val, Wrapped: fmt.Errorf("must not contain line breaks")}
	}
	return nil
}

package identity

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/norm42-dev/norm42/internal/fsh"
)

// CLIIdentifier is the concrete implementation of Identifier using the
// environment and the git CLI.
type CLIIdentifier struct {
	env fsh.EnvProvider
}

// NewCLIIdentifier creates a new CLIIdentifier instance.
func NewCLIIdentifier(env fsh.EnvProvider) *CLIIdentifier {
	return &CLIIdentifier{env: env}
}

// Resolve fills any empty field of the seed identity. Login falls back to
// $USER then to DefaultLogin; email falls back to git's user.email then to
// the school address derived from the login.
func (i *CLIIdentifier) Resolve(seed Identity) Identity {
	id := seed

	if id.Login == "" {
		id.Login = i.env.Get("USER")
	}
	if id.Login == "" {
		id.Login = DefaultLogin
	}

	if id.Email == "" {
		id.Email = gitUserEmail()
	}
	if id.Email == "" {
		id.Email = fmt.Sprintf("%s@student.42.fr", id.Login)
	}

	return id
}

// gitUserEmail returns git's configured user.email, or "" when git is
// unavailable or unconfigured.
func gitUserEmail() string {
	cmd := exec.Command("git", "config", "user.email")
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return ""
	}

	return strings.TrimSpace(out.String())
}

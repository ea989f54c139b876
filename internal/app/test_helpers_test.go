package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/norm42-dev/norm42/internal/config"
	"github.com/norm42-dev/norm42/internal/identity"
	"github.com/norm42-dev/norm42/internal/resolver"
	"github.com/norm42-dev/norm42/internal/runner"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) FormatFiles(ctx context.Context, paths []string, opts FormatOptions) error {
	args := m.Called(ctx, paths, opts)
	return args.Error(0)
}

func (m *MockManager) FormatStream(ctx context.Context, in io.Reader, out io.Writer, opts FormatOptions) error {
	args := m.Called(ctx, in, out, opts)
	return args.Error(0)
}

func (m *MockManager) EnsureHeaders(ctx context.Context, paths []string, opts FormatOptions) error {
	args := m.Called(ctx, paths, opts)
	return args.Error(0)
}

func (m *MockManager) Resolve(ctx context.Context, opts FormatOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func (m *MockManager) Watch(ctx context.Context, dir string, opts FormatOptions, readyChan chan<- struct{}) error {
	args := m.Called(ctx, dir, opts, readyChan)
	return args.Error(0)
}

// mockEnv is a test double for fsh.EnvProvider.
type mockEnv struct {
	values map[string]string
}

func (e *mockEnv) Get(key string) string {
	return e.values[key]
}

// stubIdentifier resolves identities without shelling out to git.
type stubIdentifier struct{}

func (stubIdentifier) Resolve(seed identity.Identity) identity.Identity {
	if seed.Login == "" {
		seed.Login = "tester"
	}
	if seed.Email == "" {
		seed.Email = seed.Login + "@student.42.fr"
	}
	return seed
}

// testManager builds a CLIManager against real dependencies, with reports
// captured in the returned buffer and prompts answered from promptInput.
func testManager(t *testing.T, cfg *config.Config, promptInput string) (*CLIManager, *bytes.Buffer) {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &mockEnv{values: map[string]string{}}

	m := NewCLIManager(logger, cfg, resolver.NewChain(env), runner.New(), stubIdentifier{}, env, "")

	var out bytes.Buffer
	m.reporterWriter = &out
	m.promptIn = strings.NewReader(promptInput)
	return m, &out
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeExecutable drops an executable shell stub into dir.
func writeExecutable(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	//nolint:gosec // need executable permission for the stub
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

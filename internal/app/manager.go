package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/norm42-dev/norm42/internal/config"
	"github.com/norm42-dev/norm42/internal/fsh"
	"github.com/norm42-dev/norm42/internal/identity"
	"github.com/norm42-dev/norm42/internal/report"
	"github.com/norm42-dev/norm42/internal/resolver"
	"github.com/norm42-dev/norm42/internal/rules"
	"github.com/norm42-dev/norm42/internal/runner"
	"github.com/norm42-dev/norm42/internal/watch"
)

// FormatOptions carries the per-invocation settings shared by the format,
// header, resolve and watch commands.
type FormatOptions struct {
	// Enhanced runs the built-in rule engine instead of c_formatter_42.
	Enhanced bool
	// Check reports what would change without writing anything.
	Check bool
	// NoHeader drops the 42 header pass.
	NoHeader bool
	// Confirm asks before overwriting each file.
	Confirm bool
	// Verbose adds per-pass detail to text reports.
	Verbose   bool
	Format    string
	UseColour bool
	// Login and Email override the configured header identity.
	Login string
	Email string
	// ExtraEnv is passed through to the external formatter process.
	ExtraEnv map[string]string
}

// Manager defines the operations behind the CLI commands.
type Manager interface {
	FormatFiles(ctx context.Context, paths []string, opts FormatOptions) error
	FormatStream(ctx context.Context, in io.Reader, out io.Writer, opts FormatOptions) error
	EnsureHeaders(ctx context.Context, paths []string, opts FormatOptions) error
	Resolve(ctx context.Context, opts FormatOptions) error
	Watch(ctx context.Context, dir string, opts FormatOptions, readyChan chan<- struct{}) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) FormatFiles(ctx context.Context, paths []string, opts FormatOptions) error {
	return l.check().FormatFiles(ctx, paths, opts)
}

func (l *LazyManager) FormatStream(ctx context.Context, in io.Reader, out io.Writer, opts FormatOptions) error {
	return l.check().FormatStream(ctx, in, out, opts)
}

func (l *LazyManager) EnsureHeaders(ctx context.Context, paths []string, opts FormatOptions) error {
	return l.check().EnsureHeaders(ctx, paths, opts)
}

func (l *LazyManager) Resolve(ctx context.Context, opts FormatOptions) error {
	return l.check().Resolve(ctx, opts)
}

func (l *LazyManager) Watch(ctx context.Context, dir string, opts FormatOptions, readyChan chan<- struct{}) error {
	return l.check().Watch(ctx, dir, opts, readyChan)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger        *slog.Logger
	cfg           *config.Config
	chain         *resolver.Chain
	runner        *runner.Runner
	identifier    identity.Identifier
	env           fsh.EnvProvider
	formatterFlag string

	reporterWriter io.Writer
	promptIn       io.Reader
	prompt         *bufio.Reader
}

func NewCLIManager(
	l *slog.Logger,
	cfg *config.Config,
	chain *resolver.Chain,
	run *runner.Runner,
	id identity.Identifier,
	env fsh.EnvProvider,
	formatterFlag string,
) *CLIManager {
	return &CLIManager{
		logger:         l,
		cfg:            cfg,
		chain:          chain,
		runner:         run,
		identifier:     id,
		env:            env,
		formatterFlag:  formatterFlag,
		reporterWriter: os.Stdout,
		promptIn:       os.Stdin,
	}
}

// FormatFiles formats each file, writing successful rewrites back in place.
// Each file is staged to a temporary copy first, so a failing run leaves the
// original byte-identical.
func (m *CLIManager) FormatFiles(_ context.Context, paths []string, opts FormatOptions) error {
	enhanced := opts.Enhanced || m.cfg.Enhanced
	m.logger.Debug("formatting files", "count", len(paths), "enhanced", enhanced, "check", opts.Check)

	var plan *resolver.ExecutionPlan
	if !enhanced {
		var err error
		plan, err = m.chain.Resolve(m.cfg.FormatterOverride(m.formatterFlag, m.env))
		if err != nil {
			return err
		}
		m.runner.Env = mergeEnv(m.cfg.Env, opts.ExtraEnv)
	}

	return m.rewrite(m.engine(opts), plan, paths, opts)
}

// FormatStream rewrites one source read from in and writes the result to out.
// Stream input always uses the in-process engine, and skips are logged rather
// than reported so out carries nothing but the source.
func (m *CLIManager) FormatStream(_ context.Context, in io.Reader, out io.Writer, opts FormatOptions) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}

	formatted, results := m.engine(opts).Format("stdin", string(data))
	for _, res := range results {
		for _, skip := range res.Skips {
			m.logger.Warn("line left alone", "pass", skip.Pass, "line", skip.Line, "reason", skip.Reason)
		}
	}

	_, err = io.WriteString(out, formatted)
	return err
}

// EnsureHeaders runs only the header pass over each file.
func (m *CLIManager) EnsureHeaders(_ context.Context, paths []string, opts FormatOptions) error {
	m.logger.Debug("ensuring headers", "count", len(paths))

	eng := rules.NewHeaderEngine(rules.Options{Identity: m.identity(opts)})
	return m.rewrite(eng, nil, paths, opts)
}

// Resolve walks the resolution chain and reports the winning plan, or the
// full attempt trail when nothing was found.
func (m *CLIManager) Resolve(_ context.Context, opts FormatOptions) error {
	plan, err := m.chain.Resolve(m.cfg.FormatterOverride(m.formatterFlag, m.env))

	rr := &report.ResolveReport{Plan: plan, Attempts: m.chain.Attempts(), Err: err}
	if wErr := m.reporter(opts).WriteResolve(m.reporterWriter, rr); wErr != nil {
		return wErr
	}
	return err
}

// Watch formats sources as they change under dir. Check and confirm make no
// sense against editor saves, so they are forced off.
// If you want to know when the watcher is ready to start listening to changes,
// pass a non-nil readyChan to be notified.
func (m *CLIManager) Watch(ctx context.Context, dir string, opts FormatOptions, readyChan chan<- struct{}) error {
	m.logger.Debug("watching", "dir", dir, "enhanced", opts.Enhanced || m.cfg.Enhanced)

	opts.Check = false
	opts.Confirm = false

	watcher := watch.NewWatcher(dir, m.logger)

	callback := func(event watch.Event) {
		m.logger.Info("Source changed:", "path", event.Path)
		if err := m.FormatFiles(ctx, []string{event.Path}, opts); err != nil {
			m.logger.Error("Format failed", "path", event.Path, "error", err)
		}
	}

	// Forward watcher Ready signal if caller wants notification
	if readyChan != nil {
		go func() {
			<-watcher.Ready
			readyChan <- struct{}{}
		}()
	}

	return watcher.Watch(ctx, callback)
}

// rewrite runs one engine or execution plan over every path, reports the
// outcome and maps it to the invocation error.
func (m *CLIManager) rewrite(eng *rules.Engine, plan *resolver.ExecutionPlan, paths []string, opts FormatOptions) error {
	rep := report.NewRunReport()
	rep.Check = opts.Check

	var firstErr error
	for _, path := range paths {
		fr := m.rewriteFile(eng, plan, path, opts)
		if fr.Err != nil && firstErr == nil {
			firstErr = fr.Err
		}
		rep.Add(fr)
	}
	rep.Finish()

	if err := m.reporter(opts).WriteRun(m.reporterWriter, rep); err != nil {
		return err
	}

	if firstErr != nil {
		return firstErr
	}
	if changed, _, _ := rep.Stats(); opts.Check && changed > 0 {
		return &DriftError{Count: changed}
	}
	return nil
}

// rewriteFile formats one file and writes the result back unless check or an
// unconfirmed prompt stops it. Failures leave the original untouched.
func (m *CLIManager) rewriteFile(eng *rules.Engine, plan *resolver.ExecutionPlan, path string, opts FormatOptions) report.FileResult {
	fr := report.FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		fr.Status = report.StatusFailed
		fr.Err = err
		return fr
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fr.Status = report.StatusFailed
		fr.Err = err
		return fr
	}
	text := string(data)

	var formatted string
	if plan == nil {
		formatted, fr.Passes = eng.Format(filepath.Base(path), text)
	} else {
		res, runErr := m.runner.Run(plan, path)
		if runErr != nil {
			fr.Status = report.StatusFailed
			fr.Err = runErr
			return fr
		}
		formatted = res.Output
		fr.Stdout = res.Stdout
		fr.Stderr = res.Stderr
	}

	if formatted == text {
		fr.Status = report.StatusUnchanged
		return fr
	}
	fr.Status = report.StatusChanged
	if opts.Check {
		return fr
	}

	if opts.Confirm && !m.confirmOverwrite(path) {
		fr.Status = report.StatusSkipped
		return fr
	}

	if wErr := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); wErr != nil {
		fr.Status = report.StatusFailed
		fr.Err = wErr
		return fr
	}
	return fr
}

// confirmOverwrite asks before rewriting path. Anything but a yes, including
// a closed stdin, declines.
func (m *CLIManager) confirmOverwrite(path string) bool {
	if m.prompt == nil {
		m.prompt = bufio.NewReader(m.promptIn)
	}

	fmt.Fprintf(m.reporterWriter, "overwrite %s? [y/N] ", path)
	answer, err := m.prompt.ReadString('\n')
	if err != nil {
		fmt.Fprintln(m.reporterWriter)
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// identity resolves the header author fields, flag values over config keys
// over environment fallbacks.
func (m *CLIManager) identity(opts FormatOptions) identity.Identity {
	seed := identity.Identity{Login: opts.Login, Email: opts.Email}
	if seed.Login == "" {
		seed.Login = m.cfg.Login
	}
	if seed.Email == "" {
		seed.Email = m.cfg.Email
	}
	return m.identifier.Resolve(seed)
}

func (m *CLIManager) engine(opts FormatOptions) *rules.Engine {
	return rules.NewEngine(rules.Options{
		IndentWidth: m.cfg.IndentWidth,
		Identity:    m.identity(opts),
		SkipHeaders: opts.NoHeader || m.cfg.SkipHeaders,
	})
}

func (m *CLIManager) reporter(opts FormatOptions) report.Reporter {
	switch opts.Format {
	case "json":
		return &report.JSONReporter{}
	default:
		return &report.TextReporter{Verbose: opts.Verbose, UseColour: opts.UseColour}
	}
}

// mergeEnv layers per-invocation variables over the configured ones.
func mergeEnv(base, extra map[string]string) map[string]string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}

	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

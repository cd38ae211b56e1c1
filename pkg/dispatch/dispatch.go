// Package dispatch turns a parsed xfmt command into formatter invocations.
//
// Each mode resolves the project metadata and rustfmt config it needs, hides
// the config for the lifetime of the child process and returns the child's
// exit code. Nothing in this package exits the process.
package dispatch

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/fmtconfig"
	"github.com/arthur-debert/xfmt/pkg/logging"
	"github.com/arthur-debert/xfmt/pkg/manifest"
	"github.com/arthur-debert/xfmt/pkg/paths"
	"github.com/arthur-debert/xfmt/pkg/process"
	"github.com/arthur-debert/xfmt/pkg/settings"
)

// ExitInternal is the exit code reported alongside a non-nil error. It differs
// from rustfmt's own failure status (1).
const ExitInternal = 2

// Options is the parsed command.
type Options struct {
	// Check only checks formatting
	Check bool
	// ConfigPath, when set, is used instead of searching for a config
	ConfigPath string
	// Files to format in place
	Files []string
	// AdditionalArgs are the arguments given after "--", in order
	AdditionalArgs []string
}

// Dispatcher runs the formatter for one xfmt invocation.
type Dispatcher struct {
	Runner   process.Runner
	Settings *settings.Settings

	// Dir is the working directory. Empty means the process working directory.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a dispatcher wired to the process's standard streams.
func New(s *settings.Settings) *Dispatcher {
	if s == nil {
		s = settings.Default()
	}
	return &Dispatcher{
		Runner:   process.NewExecutor(),
		Settings: s,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Run executes mode and returns the exit code xfmt should exit with. When the
// returned error is non-nil the code is ExitInternal.
func (d *Dispatcher) Run(mode Mode, opts Options) (int, error) {
	done := logging.LogOperationStart(logging.GetLogger("dispatch"), mode.String())
	defer done()

	var (
		code int
		err  error
	)
	switch mode {
	case Stdio:
		code, err = d.runStdio(opts)
	case Files:
		code, err = d.runFiles(opts)
	case Project:
		code, err = d.runProject(opts)
	default:
		err = errors.Newf(errors.ErrInternal, "unknown mode %d", int(mode))
	}

	if err != nil {
		return ExitInternal, err
	}
	return code, nil
}

func (d *Dispatcher) runStdio(opts Options) (int, error) {
	wd, err := d.workDir()
	if err != nil {
		return 0, err
	}

	meta, err := manifest.ReadFrom(wd)
	if err != nil {
		return 0, err
	}
	cfgs, err := d.loadConfigs(wd, opts.ConfigPath)
	if err != nil {
		return 0, err
	}
	defer cfgs.Close()

	input, err := io.ReadAll(d.Stdin)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrIO, "failed to read standard input")
	}

	cmd := process.Command{
		Name:   d.Settings.Rustfmt.Bin,
		Args:   RustfmtArgs(opts, meta, cfgs.active),
		Dir:    d.Dir,
		Stdin:  bytes.NewReader(input),
		Stdout: d.Stdout,
		Stderr: d.Stderr,
	}

	return d.runHidden(cfgs, cmd)
}

func (d *Dispatcher) runFiles(opts Options) (int, error) {
	for _, file := range opts.Files {
		code, err := d.formatFile(file, opts)
		if err != nil {
			return 0, err
		}
		if code != 0 {
			logger := logging.GetLogger("dispatch")
			logger.Info().Str("file", file).Int("exitCode", code).Msg("Formatter failed, skipping remaining files")
			return code, nil
		}
	}
	return 0, nil
}

// formatFile pipes one file through rustfmt and overwrites it with the result
// when rustfmt succeeds.
func (d *Dispatcher) formatFile(file string, opts Options) (int, error) {
	path, err := d.resolve(file)
	if err != nil {
		return 0, err
	}

	meta, err := manifest.ReadFrom(path)
	if err != nil {
		return 0, err
	}
	cfgs, err := d.loadConfigs(path, opts.ConfigPath)
	if err != nil {
		return 0, err
	}
	defer cfgs.Close()

	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrIO, "cannot stat %s", path)
	}
	input, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrIO, "failed to read %s", path)
	}

	var output bytes.Buffer
	cmd := process.Command{
		Name:   d.Settings.Rustfmt.Bin,
		Args:   RustfmtArgs(opts, meta, cfgs.active),
		Dir:    d.Dir,
		Stdin:  bytes.NewReader(input),
		Stdout: &output,
		Stderr: d.Stderr,
	}

	code, err := d.runHidden(cfgs, cmd)
	if err != nil || code != 0 {
		return code, err
	}

	if err := os.WriteFile(path, output.Bytes(), info.Mode().Perm()); err != nil {
		return 0, errors.Wrapf(err, errors.ErrIO, "failed to write %s", path)
	}
	logger := logging.GetLogger("dispatch")
	logger.Debug().Str("file", path).Int("bytes", output.Len()).Msg("File formatted")

	return 0, nil
}

func (d *Dispatcher) runProject(opts Options) (int, error) {
	wd, err := d.workDir()
	if err != nil {
		return 0, err
	}

	cfgs, err := d.loadConfigs(wd, opts.ConfigPath)
	if err != nil {
		return 0, err
	}
	defer cfgs.Close()

	cmd := process.Command{
		Name:   d.Settings.Cargo.Bin,
		Args:   CargoFmtArgs(opts, cfgs.active),
		Dir:    d.Dir,
		Stdin:  d.Stdin,
		Stdout: d.Stdout,
		Stderr: d.Stderr,
	}

	return d.runHidden(cfgs, cmd)
}

// runHidden runs cmd while every config in cfgs is hidden. The configs are
// restored before runHidden returns, including when the command cannot be
// started. Interrupts are held until then so the restore always happens.
func (d *Dispatcher) runHidden(cfgs *configSet, cmd process.Command) (int, error) {
	release := process.HoldSignals()
	defer release()

	var code int
	err := withHidden(cfgs.hidden, func() error {
		var runErr error
		code, runErr = d.Runner.Run(cmd)
		return runErr
	})
	if err != nil {
		return 0, err
	}
	return code, nil
}

// withHidden nests WithHidden scopes so configs are restored in reverse order.
func withHidden(cfgs []*fmtconfig.FormatConfig, fn func() error) error {
	if len(cfgs) == 0 {
		return fn()
	}
	return cfgs[0].WithHidden(func() error {
		return withHidden(cfgs[1:], fn)
	})
}

// configSet is the config whose entries reach the formatter together with
// every config file the formatter must not find on its own.
type configSet struct {
	active *fmtconfig.FormatConfig
	hidden []*fmtconfig.FormatConfig
}

// Close restores any config still hidden.
func (c *configSet) Close() {
	for _, cfg := range c.hidden {
		cfg.Close()
		if cfg.Hidden() {
			logger := logging.GetLogger("dispatch")
			logger.Warn().
				Str("path", cfg.Path()).
				Str("shadow", cfg.ShadowPath()).
				Msg("Config is still hidden, rename the shadow file back by hand")
		}
	}
}

// loadConfigs reads the explicit config when one was given, otherwise the one
// in effect for start. With an explicit config the discovered one is hidden
// as well, since the formatter would otherwise pick it up and merge it in.
func (d *Dispatcher) loadConfigs(start, override string) (*configSet, error) {
	if override == "" {
		cfg, err := fmtconfig.ReadFrom(start)
		if err != nil {
			return nil, err
		}
		logEntries(cfg)
		return &configSet{active: cfg, hidden: []*fmtconfig.FormatConfig{cfg}}, nil
	}

	path, err := d.resolve(override)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("dispatch")
	logger.Debug().Str("config", path).Msg("Using explicit config")

	cfg, err := fmtconfig.Read(path)
	if err != nil {
		return nil, err
	}
	logEntries(cfg)
	set := &configSet{active: cfg, hidden: []*fmtconfig.FormatConfig{cfg}}

	discovered, ok, err := fmtconfig.Find(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return set, nil
	}
	shadowed, err := fmtconfig.Locate(discovered)
	if err != nil {
		return nil, err
	}
	if shadowed.Path() != cfg.Path() {
		logger.Debug().Str("config", shadowed.Path()).Msg("Hiding discovered config")
		set.hidden = append(set.hidden, shadowed)
	}
	return set, nil
}

func logEntries(cfg *fmtconfig.FormatConfig) {
	entries := cfg.Entries()
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	logger := logging.GetLogger("dispatch")
	logger.Debug().Str("config", cfg.Path()).Strs("keys", keys).Msg("Passing config to formatter")
}

func (d *Dispatcher) workDir() (string, error) {
	if d.Dir != "" {
		return paths.ResolveAbsolute(d.Dir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrIO, "unable to determine working directory")
	}
	return wd, nil
}

// resolve makes path absolute relative to the dispatcher's working directory.
func (d *Dispatcher) resolve(path string) (string, error) {
	if err := paths.ValidatePath(path); err != nil {
		return "", err
	}
	if filepath.IsAbs(path) {
		return paths.ResolveAbsolute(path)
	}

	wd, err := d.workDir()
	if err != nil {
		return "", err
	}
	return paths.ResolveAbsolute(filepath.Join(wd, path))
}

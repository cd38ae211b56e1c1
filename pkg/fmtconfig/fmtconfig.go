package fmtconfig

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/logging"
	"github.com/arthur-debert/xfmt/pkg/paths"
)

// Config file names in order of precedence.
const (
	DotFileName = ".rustfmt.toml"
	FileName    = "rustfmt.toml"
)

// Entry is one top-level key with its value rendered as a string.
type Entry struct {
	Key   string
	Value string
}

// FormatConfig is a parsed rustfmt config file together with the on-disk
// state needed to hide it.
type FormatConfig struct {
	mu     sync.Mutex
	hidden bool

	configPath string
	configDir  string
	entries    []Entry
}

// ReadFrom finds the config nearest to start and reads it.
func ReadFrom(start string) (*FormatConfig, error) {
	configPath, ok, err := Find(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf(errors.ErrConfigNotFound, "unable to find %s or %s above %s", DotFileName, FileName, start).
			WithDetail("start", start)
	}

	return Read(configPath)
}

// Find returns the config in effect for start. See the package documentation
// for the precedence rules.
func Find(start string) (string, bool, error) {
	for _, name := range []string{DotFileName, FileName} {
		matches, err := paths.FindAncestors(start, name)
		if err != nil {
			return "", false, err
		}
		if nearest, ok := paths.Nearest(matches); ok {
			logger := logging.GetLogger("fmtconfig")
			logger.Debug().Str("start", start).Str("config", nearest).Msg("Found rustfmt config")
			return nearest, true, nil
		}
	}

	return "", false, nil
}

// Read parses the config file at configPath.
func Read(configPath string) (*FormatConfig, error) {
	cfg, err := Locate(configPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.configPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", cfg.configPath)
	}

	cfg.entries, err = parseEntries(cfg.configPath, data)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("fmtconfig")
	logger.Debug().
		Str("path", cfg.configPath).
		Int("entries", len(cfg.entries)).
		Msg("Rustfmt config loaded")

	return cfg, nil
}

// Locate returns the config file at configPath without reading it. The
// result has no entries and is only good for hiding the file.
func Locate(configPath string) (*FormatConfig, error) {
	absPath, err := paths.ResolveAbsolute(configPath)
	if err != nil {
		return nil, err
	}

	configDir, ok := paths.Parent(absPath)
	if !ok {
		return nil, errors.Newf(errors.ErrNoParentDirectory, "unable to find parent of %s", absPath)
	}

	return &FormatConfig{
		configPath: absPath,
		configDir:  configDir,
	}, nil
}

// Path returns the absolute path of the config file.
func (c *FormatConfig) Path() string {
	return c.configPath
}

// Dir returns the directory holding the config file.
func (c *FormatConfig) Dir() string {
	return c.configDir
}

// ShadowPath is where the config lives while hidden.
func (c *FormatConfig) ShadowPath() string {
	return filepath.Join(c.configDir, paths.ShadowName(filepath.Base(c.configPath)))
}

// Entries returns a copy of the parsed entries in file order.
func (c *FormatConfig) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Args renders the entries as rustfmt arguments:
// "--config", "key=value" for every entry.
func (c *FormatConfig) Args() []string {
	args := make([]string, 0, len(c.entries)*2)
	for _, e := range c.entries {
		args = append(args, "--config", e.Key+"="+e.Value)
	}
	return args
}

// Hidden reports whether the config is currently renamed away.
func (c *FormatConfig) Hidden() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hidden
}

// Hide renames the config file to its shadow name.
func (c *FormatConfig) Hide() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	shadow := c.ShadowPath()

	// os.Rename would silently replace a leftover shadow file
	if _, err := os.Lstat(shadow); err == nil {
		return errors.Newf(errors.ErrIO, "cannot hide %s: %s already exists", c.configPath, shadow).
			WithDetail("shadow", shadow)
	}

	if err := os.Rename(c.configPath, shadow); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to hide %s", c.configPath)
	}
	c.hidden = true

	logger := logging.GetLogger("fmtconfig")
	logger.Debug().Str("path", c.configPath).Str("shadow", shadow).Msg("Config hidden")
	return nil
}

// Unhide renames the shadow file back to the config's original name.
func (c *FormatConfig) Unhide() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.unhideLocked()
}

func (c *FormatConfig) unhideLocked() error {
	shadow := c.ShadowPath()
	if err := os.Rename(shadow, c.configPath); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to restore %s", c.configPath)
	}
	c.hidden = false

	logger := logging.GetLogger("fmtconfig")
	logger.Debug().Str("path", c.configPath).Msg("Config restored")
	return nil
}

// WithHidden hides the config, runs fn and restores the config, even when fn
// fails or panics. An error from fn takes precedence over a restore error.
func (c *FormatConfig) WithHidden(fn func() error) (err error) {
	if err := c.Hide(); err != nil {
		return err
	}

	defer func() {
		unhideErr := c.Unhide()
		if unhideErr == nil {
			return
		}
		if err == nil {
			err = unhideErr
			return
		}
		logger := logging.GetLogger("fmtconfig")
		logger.Error().Err(unhideErr).Str("path", c.configPath).Msg("Failed to restore config")
	}()

	return fn()
}

// Close restores the config if it is still hidden. Failures are logged, not
// returned: by the time Close runs the exit status is already decided.
func (c *FormatConfig) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hidden {
		return
	}

	if err := c.unhideLocked(); err != nil {
		logger := logging.GetLogger("fmtconfig")
		logger.Warn().Err(err).Str("path", c.configPath).Msg("Could not restore hidden config")
	}
}

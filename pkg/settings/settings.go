// Package settings loads xfmt's own settings (which binaries to run, whether
// to keep a log file). These are unrelated to the rustfmt config files xfmt
// translates.
//
// Sources, later ones win:
//
//  1. Built-in defaults
//  2. $XDG_CONFIG_HOME/xfmt/config.toml, when present
//  3. XFMT_* environment variables (XFMT_RUSTFMT_BIN -> rustfmt.bin)
package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "XFMT_"

// Settings holds the resolved tool settings.
type Settings struct {
	Rustfmt Binary `koanf:"rustfmt"`
	Cargo   Binary `koanf:"cargo"`
	Log     Log    `koanf:"log"`
}

// Binary names an external executable, looked up on PATH unless absolute.
type Binary struct {
	Bin string `koanf:"bin"`
}

// Log controls logging outside of the -v flag.
type Log struct {
	File bool `koanf:"file"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"rustfmt.bin": "rustfmt",
		"cargo.bin":   "cargo",
		"log.file":    true,
	}
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Rustfmt: Binary{Bin: "rustfmt"},
		Cargo:   Binary{Bin: "cargo"},
		Log:     Log{File: true},
	}
}

// FilePath returns the location of the user settings file.
func FilePath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "xfmt", "config.toml")
}

// Load reads settings from the default locations.
func Load() (*Settings, error) {
	return LoadFrom(FilePath())
}

// LoadFrom reads settings using settingsFile as the user settings file. A
// missing file is not an error.
func LoadFrom(settingsFile string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	if _, err := os.Stat(settingsFile); err == nil {
		if err := k.Load(file.Provider(settingsFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", settingsFile)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot stat %s", settingsFile)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode settings")
	}

	if s.Rustfmt.Bin == "" || s.Cargo.Bin == "" {
		return nil, errors.New(errors.ErrConfigLoad, "rustfmt.bin and cargo.bin must not be empty")
	}

	return &s, nil
}

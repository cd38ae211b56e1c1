package settings

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "config.toml", `
[rustfmt]
bin = "/opt/rust/bin/rustfmt"

[log]
file = false
`)

	s, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/rust/bin/rustfmt", s.Rustfmt.Bin)
	assert.Equal(t, "cargo", s.Cargo.Bin)
	assert.False(t, s.Log.File)
}

func TestLoadFrom_EnvWins(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "config.toml", "[cargo]\nbin = \"from-file\"\n")
	t.Setenv("XFMT_CARGO_BIN", "from-env")
	t.Setenv("XFMT_LOG_FILE", "false")

	s, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.Cargo.Bin)
	assert.False(t, s.Log.File)
}

func TestLoadFrom_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "config.toml", "[rustfmt\n")

	_, err := LoadFrom(path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadFrom_EmptyBinary(t *testing.T) {
	t.Setenv("XFMT_RUSTFMT_BIN", "")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestFilePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, filepath.Join("/custom/config", "xfmt", "config.toml"), FilePath())
}

// Test Type: Unit Test
// Description: Tests for Cargo.toml discovery and edition extraction

package manifest_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/manifest"
	"github.com/arthur-debert/xfmt/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantCode    errors.ErrorCode
		wantEdition string
		wantHas     bool
	}{
		{
			name: "edition_present",
			content: `
[package]
name = "demo"
edition = "2021"
`,
			wantEdition: "2021",
			wantHas:     true,
		},
		{
			name: "edition_absent",
			content: `
[package]
name = "demo"
`,
			wantHas: false,
		},
		{
			name: "workspace_only",
			content: `
[workspace]
members = ["a"]
`,
			wantCode: errors.ErrMalformedManifest,
		},
		{
			name: "edition_not_string",
			content: `
[package]
edition = 2021
`,
			wantCode: errors.ErrMalformedManifest,
		},
		{
			name:     "package_not_table",
			content:  `package = "demo"`,
			wantCode: errors.ErrMalformedManifest,
		},
		{
			name:     "invalid_toml",
			content:  `[package`,
			wantCode: errors.ErrMalformedManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := testutil.CreateFile(t, dir, manifest.FileName, tt.content)

			meta, err := manifest.Read(path)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				return
			}

			require.NoError(t, err)
			edition, has := meta.Edition()
			assert.Equal(t, tt.wantHas, has)
			assert.Equal(t, tt.wantEdition, edition)
			assert.Equal(t, path, meta.Path)
		})
	}
}

func TestReadFrom_NearestWins(t *testing.T) {
	root := testutil.EvalDir(t, t.TempDir())
	testutil.CreateFile(t, root, manifest.FileName, "[package]\nedition = \"2018\"\n")
	member := testutil.CreateDir(t, root, filepath.Join("crates", "core"))
	testutil.CreateFile(t, member, manifest.FileName, "[package]\nedition = \"2024\"\n")
	src := testutil.CreateFile(t, member, filepath.Join("src", "lib.rs"), "")

	meta, err := manifest.ReadFrom(src)
	require.NoError(t, err)
	edition, has := meta.Edition()
	assert.True(t, has)
	assert.Equal(t, "2024", edition)

	meta, err = manifest.ReadFrom(filepath.Join(root, "crates"))
	require.NoError(t, err)
	edition, _ = meta.Edition()
	assert.Equal(t, "2018", edition)
}

func TestReadFrom_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := manifest.Find(dir)
	require.NoError(t, err)
	if ok {
		t.Skip("a Cargo.toml exists above the temp directory")
	}

	_, err = manifest.ReadFrom(dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestNotFound))
}

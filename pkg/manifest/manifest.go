// Package manifest reads the project metadata xfmt needs from Cargo.toml.
package manifest

import (
	"os"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/logging"
	"github.com/arthur-debert/xfmt/pkg/paths"
	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the name of the project manifest.
const FileName = "Cargo.toml"

// Metadata is the subset of the nearest manifest used to invoke the formatter.
type Metadata struct {
	Path       string
	edition    string
	hasEdition bool
}

// Edition returns package.edition and whether the manifest declares one.
func (m *Metadata) Edition() (string, bool) {
	return m.edition, m.hasEdition
}

// ReadFrom finds the manifest nearest to start and reads it.
func ReadFrom(start string) (*Metadata, error) {
	manifestPath, ok, err := Find(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf(errors.ErrManifestNotFound, "unable to find %s above %s", FileName, start).
			WithDetail("start", start)
	}

	return Read(manifestPath)
}

// Find returns the path of the nearest manifest above start.
func Find(start string) (string, bool, error) {
	matches, err := paths.FindAncestors(start, FileName)
	if err != nil {
		return "", false, err
	}

	nearest, ok := paths.Nearest(matches)
	return nearest, ok, nil
}

// Read parses the manifest at manifestPath. A missing edition is not an error.
func Read(manifestPath string) (*Metadata, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", manifestPath)
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrMalformedManifest, "failed to parse %s", manifestPath)
	}

	pkg, ok := doc["package"].(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrMalformedManifest, "%s missing 'package' table", manifestPath).
			WithDetail("path", manifestPath)
	}

	meta := &Metadata{Path: manifestPath}

	if raw, present := pkg["edition"]; present {
		edition, isString := raw.(string)
		if !isString {
			return nil, errors.Newf(errors.ErrMalformedManifest, "%s: 'package.edition' must be a string, got %T", manifestPath, raw).
				WithDetail("path", manifestPath)
		}
		meta.edition = edition
		meta.hasEdition = true
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("path", manifestPath).
		Str("edition", meta.edition).
		Msg("Manifest loaded")

	return meta, nil
}

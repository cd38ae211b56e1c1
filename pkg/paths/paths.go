package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/logging"
)

// ResolveAbsolute returns path as an absolute path with "." and ".."
// collapsed. Symlinks are left alone. Relative paths are joined onto the
// current working directory.
func ResolveAbsolute(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrIO, "failed to get current directory")
	}

	return filepath.Clean(filepath.Join(cwd, path)), nil
}

// Parent returns the parent directory of path, or false when path is a
// filesystem root.
func Parent(path string) (string, bool) {
	parent := filepath.Dir(path)
	if parent == path {
		return "", false
	}
	return parent, true
}

// FindAncestors walks from start up to the filesystem root and returns the
// absolute path of every fileName found along the way, nearest first.
//
// When start is a directory the walk begins there, otherwise it begins at the
// parent of start.
func FindAncestors(start, fileName string) ([]string, error) {
	absStart, err := ResolveAbsolute(start)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absStart)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot stat %s", absStart)
	}

	current := absStart
	if !info.IsDir() {
		parent, ok := Parent(absStart)
		if !ok {
			return nil, errors.Newf(errors.ErrNotFound, "%s has no parent directory", absStart).
				WithDetail("path", absStart)
		}
		current = parent
	}

	var found []string
	for {
		candidate := filepath.Join(current, fileName)

		_, err := os.Stat(candidate)
		switch {
		case err == nil:
			found = append(found, candidate)
		case os.IsNotExist(err):
		default:
			return nil, errors.Wrapf(err, errors.ErrIO, "cannot stat %s", candidate)
		}

		next, ok := Parent(current)
		if !ok {
			break
		}
		current = next
	}

	logger := logging.GetLogger("paths")
	logger.Trace().
		Str("start", absStart).
		Str("file", fileName).
		Strs("found", found).
		Msg("Ancestor search finished")

	return found, nil
}

// Nearest returns the first (closest) entry of an ancestor search result.
func Nearest(matches []string) (string, bool) {
	if len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

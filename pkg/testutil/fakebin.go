package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FakeBinary writes an executable /bin/sh script named name into dir and
// returns its path. body is the script text after the shebang line.
func FakeBinary(t *testing.T, dir, name, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake binaries are shell scripts")
	}

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("Failed to write fake binary %s: %v", path, err)
	}
	return path
}

// RecordingFormatter is a fake rustfmt body: it appends its arguments (one per
// line, followed by a "--end--" marker) to argsFile and echoes stdin to
// stdout in upper case, exiting with the status in $XFMT_FAKE_STATUS (default 0).
func RecordingFormatter(argsFile string) string {
	return `for a in "$@"; do printf '%s\n' "$a" >> '` + argsFile + `'; done
printf '%s\n' '--end--' >> '` + argsFile + `'
tr 'a-z' 'A-Z'
exit "${XFMT_FAKE_STATUS:-0}"`
}

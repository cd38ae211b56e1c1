// Package testutil provides fixture helpers for xfmt tests.
//
// Key components:
//   - CreateFile / CreateDir: build project trees under t.TempDir()
//   - FakeBinary: drop an executable shell script that stands in for
//     rustfmt or cargo
//   - Chdir: switch the working directory for the duration of a test
//
// Tests that call Chdir must not run in parallel.
package testutil

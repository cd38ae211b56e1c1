// Package fmtconfig locates and reads rustfmt configuration files and hides
// them from rustfmt's own discovery while xfmt runs the formatter.
//
// # Discovery
//
// Find searches every ancestor of the start location for .rustfmt.toml and
// returns the nearest match. Only when no .rustfmt.toml exists anywhere above
// the start does it repeat the search for rustfmt.toml. A dot-file far up the
// tree therefore beats a plain file right next to the start.
//
// # Translation
//
// Every top-level key must hold a scalar (string, integer, float, boolean or
// date/time). Each entry becomes a "--config key=value" argument pair, in the
// order the keys appear in the file. Arrays and tables are rejected with
// ErrUnsupportedConfigValue.
//
// # Hiding
//
// rustfmt refuses (or behaves inconsistently) when it finds a config file
// while also receiving --config arguments. Hide renames the file to
// _<name> in the same directory and Unhide renames it back:
//
//	cfg, err := fmtconfig.ReadFrom(cwd)
//	if err != nil {
//	    return err
//	}
//	defer cfg.Close()
//
//	err = cfg.WithHidden(func() error {
//	    return run(cfg.Args())
//	})
//
// Close restores a config that is still hidden and only logs failures.
// Two xfmt processes working on the same file at once are not supported.
package fmtconfig

package dispatch

import (
	"github.com/arthur-debert/xfmt/pkg/fmtconfig"
	"github.com/arthur-debert/xfmt/pkg/manifest"
)

// Separator splits cargo arguments from rustfmt arguments in Project mode.
const Separator = "--"

// RustfmtArgs builds the rustfmt argument list used in Stdio and Files mode:
//
//	[--check] [--edition E] (--config k=v)* additional...
func RustfmtArgs(opts Options, meta *manifest.Metadata, cfg *fmtconfig.FormatConfig) []string {
	var args []string

	if opts.Check {
		args = append(args, "--check")
	}
	if meta != nil {
		if edition, ok := meta.Edition(); ok {
			args = append(args, "--edition", edition)
		}
	}
	args = append(args, cfg.Args()...)
	args = append(args, opts.AdditionalArgs...)

	return args
}

// CargoFmtArgs builds the cargo argument list used in Project mode:
//
//	fmt [--check] before... -- (--config k=v)* after...
//
// where before and after are the additional arguments split at the first
// separator. No --edition is passed; cargo knows each member's edition.
func CargoFmtArgs(opts Options, cfg *fmtconfig.FormatConfig) []string {
	before, after := SplitAtFirst(opts.AdditionalArgs, Separator)

	args := []string{"fmt"}
	if opts.Check {
		args = append(args, "--check")
	}
	args = append(args, before...)
	args = append(args, Separator)
	args = append(args, cfg.Args()...)
	args = append(args, after...)

	return args
}

// SplitAtFirst splits args around the first occurrence of sep, dropping that
// occurrence. Later occurrences stay in the second half. Without sep, all of
// args is returned as the first half.
func SplitAtFirst(args []string, sep string) ([]string, []string) {
	for i, a := range args {
		if a == sep {
			return args[:i:i], args[i+1:]
		}
	}
	return args, nil
}

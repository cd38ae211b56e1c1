package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Run rustfmt with settings from your rustfmt config file"
	MsgRootUse   = "xfmt [flags] [-- passthrough-args...]"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagCheck   = "Only check formatting, do not change anything"
	MsgFlagConfig  = "Use this rustfmt config file instead of searching for one"
	MsgFlagFile    = "Format this file in place (repeatable)"

	// Error messages
	MsgErrPositional = "unexpected argument %q: pass files with -f and formatter arguments after --"

	MsgVersionFormat = "%s (commit %s, built %s)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)

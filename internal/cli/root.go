// Package cli is xfmt's command line surface. It parses flags, loads the tool
// settings, sets up logging and hands the parsed command to pkg/dispatch.
package cli

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/xfmt/internal/version"
	"github.com/arthur-debert/xfmt/pkg/cobrax/topics"
	"github.com/arthur-debert/xfmt/pkg/dispatch"
	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/logging"
	"github.com/arthur-debert/xfmt/pkg/settings"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// CargoSubcommand is the extra first argument cargo passes when xfmt is run
// as "cargo xfmt".
const CargoSubcommand = "xfmt"

//go:embed topics/*.md
var topicsFS embed.FS

// Streams are the standard streams of one invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// InIsTerminal selects between Stdio mode and the other modes
	InIsTerminal bool
}

// DefaultStreams returns the process's own streams.
func DefaultStreams() Streams {
	fd := os.Stdin.Fd()
	return Streams{
		In:           os.Stdin,
		Out:          os.Stdout,
		Err:          os.Stderr,
		InIsTerminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// Execute runs xfmt with args (without the program name) and returns the exit
// code. A non-nil error has not been printed yet; its exit code is
// dispatch.ExitInternal.
func Execute(args []string, streams Streams) (int, error) {
	code := 0
	rootCmd := NewRootCmd(streams, &code)
	// A nil slice would make cobra fall back to os.Args
	rootCmd.SetArgs(append([]string{}, StripCargoSubcommand(args)...))

	if err := rootCmd.Execute(); err != nil {
		logger := logging.GetLogger("cli")
		logger.Debug().
			Err(err).
			Str("code", string(errors.GetErrorCode(err))).
			Fields(errors.GetErrorDetails(err)).
			Msg("Command failed")
		return dispatch.ExitInternal, err
	}
	return code, nil
}

// StripCargoSubcommand drops the leading "xfmt" that cargo adds when it runs
// cargo-xfmt.
func StripCargoSubcommand(args []string) []string {
	if len(args) > 0 && args[0] == CargoSubcommand {
		return args[1:]
	}
	return args
}

// NewRootCmd creates the xfmt command. The formatter's exit code is stored in
// code.
func NewRootCmd(streams Streams, code *int) *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity  int
		check      bool
		configPath string
		files      []string
	)

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: versionString(),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			passthrough, err := passthroughArgs(cmd, args)
			if err != nil {
				return err
			}

			s, err := settings.Load()
			if err != nil {
				return err
			}

			logging.SetupLogger(verbosity, s.Log.File)
			logger := logging.GetLogger("cli")

			mode := dispatch.SelectMode(streams.InIsTerminal, files)
			logger.Debug().
				Str("mode", mode.String()).
				Bool("check", check).
				Str("config", configPath).
				Strs("files", files).
				Strs("passthrough", passthrough).
				Msg("Command started")

			d := dispatch.New(s)
			d.Stdin = streams.In
			d.Stdout = streams.Out
			d.Stderr = streams.Err

			result, err := d.Run(mode, dispatch.Options{
				Check:          check,
				ConfigPath:     configPath,
				Files:          files,
				AdditionalArgs: passthrough,
			})
			if err != nil {
				return err
			}

			*code = result
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().BoolVar(&check, "check", false, MsgFlagCheck)
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.Flags().StringArrayVarP(&files, "file", "f", nil, MsgFlagFile)

	initTopics(rootCmd)

	return rootCmd
}

// initTopics installs "xfmt help <topic>" backed by the embedded docs.
func initTopics(rootCmd *cobra.Command) {
	docs, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		return
	}
	// Help still works without topics
	_, _ = topics.InitializeWithOptions(rootCmd, docs, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
}

// passthroughArgs returns the arguments after the first "--". Later "--"
// tokens are kept. Anything before the first "--" is rejected.
func passthroughArgs(cmd *cobra.Command, args []string) ([]string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash == -1 {
		dash = len(args)
	}
	if dash > 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrPositional, args[0])
	}
	return args[dash:], nil
}

func versionString() string {
	return fmt.Sprintf(MsgVersionFormat, version.Version, version.Commit, version.Date)
}

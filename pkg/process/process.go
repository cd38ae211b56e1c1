// Package process runs external commands for xfmt and turns their outcome
// into an exit code.
package process

import (
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/logging"
	"github.com/rs/zerolog"
)

// Command describes one child process. A stream set to one of os.Stdin,
// os.Stdout or os.Stderr is inherited; any other reader or writer is piped.
// A nil stream is connected to the null device.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Argv returns the full argument vector, program name first.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Runner starts a command, waits for it and returns its exit code.
type Runner interface {
	Run(cmd Command) (int, error)
}

// Executor is the os/exec backed Runner.
type Executor struct {
	logger zerolog.Logger
}

// NewExecutor creates a new executor
func NewExecutor() *Executor {
	return &Executor{
		logger: logging.GetLogger("process"),
	}
}

// Run starts cmd and blocks until it exits. There is no timeout.
//
// A child killed by a signal reports exit code 1. The returned error is
// non-nil only when the child could not be started or waited on; a non-zero
// exit status is not an error.
func (e *Executor) Run(c Command) (int, error) {
	if c.Name == "" {
		return 1, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	logging.LogCommand(e.logger, c.Name, c.Args)

	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	// Terminal interrupts already reach the child through the process group.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, interrupts...)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return 1, errors.Wrapf(err, errors.ErrSpawn, "failed to start %s", c.Name).
			WithDetail("command", c.Name)
	}

	done := make(chan struct{})
	defer close(done)
	go forwardTerm(cmd.Process, sigs, done)

	err := cmd.Wait()
	code := exitCode(cmd.ProcessState)

	if err != nil {
		if _, isExit := err.(*exec.ExitError); !isExit {
			return code, errors.Wrapf(err, errors.ErrIO, "failed waiting for %s", c.Name)
		}
	}

	e.logger.Debug().
		Str("command", c.Name).
		Int("exitCode", code).
		Msg("Command finished")

	return code, nil
}

// forwardTerm passes SIGTERM on to the child; SIGINT is dropped.
func forwardTerm(p *os.Process, sigs <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case sig := <-sigs:
			if sig == syscall.SIGTERM {
				_ = p.Signal(sig)
			}
		case <-done:
			return
		}
	}
}

func exitCode(state *os.ProcessState) int {
	if state == nil {
		return 1
	}
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return 1
}

package process

import (
	"os"
	"os/signal"
	"syscall"
)

// interrupts are the signals xfmt outlives while a formatter runs.
var interrupts = []os.Signal{os.Interrupt, syscall.SIGTERM}

// HoldSignals keeps SIGINT and SIGTERM from terminating xfmt until release is
// called. Signals that arrive in the meantime are discarded.
func HoldSignals() (release func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, interrupts...)
	return func() { signal.Stop(sigs) }
}

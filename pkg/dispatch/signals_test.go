//go:build unix

package dispatch

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_InterruptWhileHiddenRestoresConfig(t *testing.T) {
	for _, sig := range []syscall.Signal{syscall.SIGINT, syscall.SIGTERM} {
		t.Run(sig.String(), func(t *testing.T) {
			dir, configPath := project(t, "2021")
			runner := &fakeRunner{
				configPath: configPath,
				onRun: func() {
					_ = syscall.Kill(os.Getpid(), sig)
					time.Sleep(100 * time.Millisecond)
				},
			}
			d, _, _ := newTestDispatcher(dir, runner)

			code, err := d.Run(Project, Options{})
			require.NoError(t, err)
			assert.Equal(t, 0, code)
			assert.Equal(t, []bool{true}, runner.hidden)
			assertRestored(t, configPath)
		})
	}
}

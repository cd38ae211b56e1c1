package process

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/arthur-debert/xfmt/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_PipesStdinAndCapturesStdout(t *testing.T) {
	bin := testutil.FakeBinary(t, t.TempDir(), "upper", `tr 'a-z' 'A-Z'`)

	var out bytes.Buffer
	code, err := NewExecutor().Run(Command{
		Name:   bin,
		Stdin:  bytes.NewBufferString("fn main(){}"),
		Stdout: &out,
		Stderr: os.Stderr,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "FN MAIN(){}", out.String())
}

func TestExecutor_ExitCode(t *testing.T) {
	bin := testutil.FakeBinary(t, t.TempDir(), "fail", `exit 3`)

	code, err := NewExecutor().Run(Command{Name: bin})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestExecutor_KilledBySignal(t *testing.T) {
	bin := testutil.FakeBinary(t, t.TempDir(), "suicide", `kill -9 $$`)

	code, err := NewExecutor().Run(Command{Name: bin})
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestExecutor_Args(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	bin := testutil.FakeBinary(t, dir, "rec", testutil.RecordingFormatter(argsFile))

	code, err := NewExecutor().Run(Command{
		Name:  bin,
		Args:  []string{"--config", "max_width=100", "a b"},
		Stdin: bytes.NewBufferString(""),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "--config\nmax_width=100\na b\n--end--\n", testutil.ReadFile(t, argsFile))
}

func TestExecutor_Dir(t *testing.T) {
	dir := testutil.EvalDir(t, t.TempDir())
	bin := testutil.FakeBinary(t, dir, "where", `pwd`)

	var out bytes.Buffer
	code, err := NewExecutor().Run(Command{Name: bin, Dir: dir, Stdout: &out})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, dir+"\n", out.String())
}

func TestExecutor_SpawnFailure(t *testing.T) {
	code, err := NewExecutor().Run(Command{Name: filepath.Join(t.TempDir(), "missing-rustfmt")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSpawn))
	assert.Equal(t, 1, code)
}

func TestExecutor_EmptyName(t *testing.T) {
	_, err := NewExecutor().Run(Command{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCommand_Argv(t *testing.T) {
	c := Command{Name: "cargo", Args: []string{"fmt", "--check"}}
	assert.Equal(t, []string{"cargo", "fmt", "--check"}, c.Argv())
}

// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code lookups

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/xfmt/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_not_found",
			code:    errors.ErrConfigNotFound,
			message: "no rustfmt config",
			wantStr: "[CONFIG_NOT_FOUND] no rustfmt config",
		},
		{
			name:    "unsupported_value",
			code:    errors.ErrUnsupportedConfigValue,
			message: "Array",
			wantStr: "[UNSUPPORTED_CONFIG_VALUE] Array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrSpawn, "cannot start %s (%d args)", "rustfmt", 3)
	assert.Equal(t, "cannot start rustfmt (3 args)", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrIO, "rename failed")

		assert.Equal(t, errors.ErrIO, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[IO] rename failed: permission denied", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrIO, "rename failed"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrIO, "rename %s", "x"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrManifestNotFound, "not found").
		WithDetail("start", "/src/project").
		WithDetail("name", "Cargo.toml")

	assert.Equal(t, "/src/project", err.Details["start"])
	assert.Equal(t, "Cargo.toml", errors.GetErrorDetails(err)["name"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrConfigNotFound, "error 1")
	err2 := errors.New(errors.ErrConfigNotFound, "error 2")
	err3 := errors.New(errors.ErrIO, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrMalformedManifest, "bad edition"),
			code:     errors.ErrMalformedManifest,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrMalformedManifest, "bad edition"),
			code:     errors.ErrIO,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrSpawn, "no binary"),
			code:     errors.ErrSpawn,
			expected: true,
		},
		{
			name:     "plain_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrIO,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrIO,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrNoParentDirectory, errors.GetErrorCode(errors.New(errors.ErrNoParentDirectory, "root")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	ioErr := errors.Wrap(rootCause, errors.ErrIO, "cannot read file")
	configErr := errors.Wrap(ioErr, errors.ErrConfigParse, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigParse))

	var middle *errors.XfmtError
	require.True(t, stderrors.As(configErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrIO, middle.Code)

	assert.True(t, stderrors.Is(configErr, rootCause))
}

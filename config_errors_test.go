package iniconfig

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigFileNotFound tests behavior when the config file doesn't exist.
func TestConfigFileNotFound(t *testing.T) {
	t.Parallel()

	c := New(filepath.Join(t.TempDir(), "missing.ini"))

	_, _, err := c.GetValue("config", "key", false)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrReadConfig)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = c.GetSection("config", false)
	require.ErrorIs(t, err, ErrReadConfig)

	err = c.SetValue("config", "key", "value", false)
	require.ErrorIs(t, err, ErrReadConfig)
	assert.NoFileExists(t, c.Path())

	_, err = c.Sections()
	require.ErrorIs(t, err, ErrReadConfig)
}

// TestSetValueInvalidInput tests that input which would not read back as a
// single entry is rejected before any I/O.
func TestSetValueInvalidInput(t *testing.T) {
	t.Parallel()

	c := newTestConfig(t, "[config]\na=1\n")
	want := readFile(t, c)

	for _, tc := range []struct {
		name    string
		section string
		key     string
		value   string
		err     error
	}{
		{name: "empty section", section: "", key: "a", err: ErrInvalidSection},
		{name: "brackets only", section: "[ ]", key: "a", err: ErrInvalidSection},
		{name: "section with newline", section: "config\n[evil]", key: "a", err: ErrInvalidSection},
		{name: "section with carriage return", section: "config\r", key: "a", err: ErrInvalidSection},
		{name: "empty key", section: "config", key: "  ", err: ErrInvalidKey},
		{name: "key with equal sign", section: "config", key: "a=b", err: ErrInvalidKey},
		{name: "key with newline", section: "config", key: "a\nb", err: ErrInvalidKey},
		{name: "key with carriage return", section: "config", key: "a\rb", err: ErrInvalidKey},
		{name: "comment key", section: "config", key: ";k", err: ErrInvalidKey},
		{name: "header key", section: "config", key: "[k]", err: ErrInvalidKey},
		{name: "value with newline", section: "config", key: "a", value: "2\n[evil]\nx=y", err: ErrInvalidValue},
		{name: "value with carriage return", section: "config", key: "a", value: "2\rx", err: ErrInvalidValue},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, c.SetValue(tc.section, tc.key, tc.value, false), tc.err)
			assert.Equal(t, want, readFile(t, c))
		})
	}

	sections, err := c.Sections()
	require.NoError(t, err)
	assert.Equal(t, []string{"config"}, sections)
}

// TestConfigPermissionDenied tests that unreadable and unwritable files surface as errors.
func TestConfigPermissionDenied(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Getuid() == 0 {
		t.Skip("root ignores permission bits")
	}

	td := t.TempDir()
	fn := filepath.Join(td, "settings.ini")
	require.NoError(t, os.WriteFile(fn, []byte("[config]\na=1\n"), 0o200))

	c := New(fn)
	_, _, err := c.GetValue("config", "a", false)
	require.ErrorIs(t, err, ErrReadConfig)

	require.NoError(t, os.Chmod(fn, 0o400))
	err = c.SetValue("config", "a", "2", false)
	require.ErrorIs(t, err, ErrWriteConfig)

	require.NoError(t, os.Chmod(fn, 0o600))
	v, _, err := c.GetValue("config", "a", false)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

// TestCreateDirectoryFailure tests that a blocked parent directory is reported.
func TestCreateDirectoryFailure(t *testing.T) {
	t.Parallel()

	td := t.TempDir()
	blocker := filepath.Join(td, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := Create(filepath.Join(blocker, "settings.ini"))
	require.ErrorIs(t, err, ErrCreateConfigDir)
}

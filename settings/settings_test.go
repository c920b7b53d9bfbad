package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gopasspw/iniconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, content string) *iniconfig.Config {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "autobackup.ini")
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o600))

	return iniconfig.New(fn)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, `; autobackup settings
[config]
BackupPath = /var/backups
BackupExclusions = *test*.kdbx||scratch.kdbx|
BackupsPreserve = 7
BackupOnDatabaseExit = yes
BackupOnDatabaseChange = 1
BackupOnlyWhenDatabaseHasChanged = True
`)

	s, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, &Settings{
		BackupPath:                       "/var/backups",
		BackupExclusions:                 []string{"*test*.kdbx", "scratch.kdbx"},
		BackupsPreserve:                  7,
		BackupOnDatabaseExit:             true,
		BackupOnDatabaseChange:           true,
		BackupOnlyWhenDatabaseHasChanged: false,
	}, s)
}

func TestLoadEmptyBackupPath(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, "[config]\nBackupPath=\nBackupsPreserve=3\n")

	s, err := Load(cfg)
	require.NoError(t, err)
	assert.True(t, s.BackupInSourceDir)
	assert.Empty(t, s.BackupPath)
	assert.Nil(t, s.BackupExclusions)
	assert.False(t, s.BackupOnDatabaseExit)
}

func TestLoadExpandsAppData(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, "[config]\nBackupPath=%AppData%/KeePass/Backups\nBackupsPreserve=3\n")

	s, err := Load(cfg)
	require.NoError(t, err)
	assert.False(t, s.BackupInSourceDir)
	assert.Equal(t, appData()+"/KeePass/Backups", s.BackupPath)
	assert.NotContains(t, s.BackupPath, AppDataPlaceholder)
}

func TestLoadInvalidPreserve(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		content string
		value   string
	}{
		{name: "not a number", content: "[config]\nBackupsPreserve=ten\n", value: "ten"},
		{name: "missing", content: "[config]\nBackupPath=/tmp\n", value: ""},
		{name: "missing section", content: "[other]\nBackupsPreserve=3\n", value: ""},
		{name: "negative", content: "[config]\nBackupsPreserve=-1\n", value: "-1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := Load(newConfig(t, tc.content))
			require.Error(t, err)
			assert.Nil(t, s)
			require.ErrorIs(t, err, ErrInvalidConfiguration)

			var ive *InvalidValueError
			require.True(t, errors.As(err, &ive))
			assert.Equal(t, KeyBackupsPreserve, ive.Key)
			assert.Equal(t, tc.value, ive.Value)
			assert.Contains(t, err.Error(), KeyBackupsPreserve)
		})
	}
}

func TestLoadStorageFailure(t *testing.T) {
	t.Parallel()

	s, err := Load(iniconfig.New(filepath.Join(t.TempDir(), "missing.ini")))
	require.Error(t, err)
	assert.Nil(t, s)
	require.ErrorIs(t, err, iniconfig.ErrReadConfig)
	assert.False(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"true":  true,
		"yes":   true,
		"1":     true,
		"True":  false,
		"YES":   false,
		"on":    false,
		"0":     false,
		"false": false,
		"":      false,
		" true": false,
	} {
		assert.Equal(t, want, parseBool(in), strconv.Quote(in))
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, "; keep this\n[config]\n; and this\nBackupsPreserve=1\n")

	want := &Settings{
		BackupPath:             "/srv/backups",
		BackupExclusions:       []string{"a.kdbx", "b*.kdbx"},
		BackupsPreserve:        12,
		BackupOnDatabaseExit:   true,
		BackupOnDatabaseChange: true,
	}
	require.NoError(t, want.Save(cfg))

	got, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	buf, err := os.ReadFile(cfg.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(buf), "; keep this"))
	assert.Contains(t, string(buf), "; and this")
	assert.Equal(t, 1, strings.Count(string(buf), "BackupsPreserve="))
}

func TestSaveDefaults(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, "")
	require.NoError(t, Defaults().Save(cfg))

	got, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	p := DefaultPath()
	assert.Equal(t, Name+".ini", filepath.Base(p))
	assert.Equal(t, Name, filepath.Base(filepath.Dir(p)))
}

func TestExpandAppData(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/plain/path", ExpandAppData("/plain/path"))
	assert.Equal(t, "%appdata%/x", ExpandAppData("%appdata%/x"))
	assert.Equal(t, appData()+"/a/"+appData(), ExpandAppData("%AppData%/a/%AppData%"))
}

func TestInvalidValueErrorIs(t *testing.T) {
	t.Parallel()

	err := &InvalidValueError{Key: "k", Value: "v", Err: strconv.ErrSyntax}
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Equal(t, `invalid configuration: invalid value for k "v": invalid syntax`, err.Error())
}

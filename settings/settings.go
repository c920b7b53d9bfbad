// Package settings loads the backup settings from the [config] section of an
// INI file. The result is a plain value which is passed to whoever needs it,
// there is no package level state.
package settings

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gopasspw/gopass/pkg/appdir"
	"github.com/gopasspw/gopass/pkg/debug"
)

const (
	// Name is the application name used for the default config location.
	Name = "autobackup"
	// Section is the INI section holding all settings.
	Section = "config"

	// AppDataPlaceholder is replaced by the per-user application data directory in BackupPath.
	AppDataPlaceholder = "%AppData%"
)

// Keys of the settings in Section.
const (
	KeyBackupPath                       = "BackupPath"
	KeyBackupExclusions                 = "BackupExclusions"
	KeyBackupsPreserve                  = "BackupsPreserve"
	KeyBackupOnDatabaseExit             = "BackupOnDatabaseExit"
	KeyBackupOnDatabaseChange           = "BackupOnDatabaseChange"
	KeyBackupOnlyWhenDatabaseHasChanged = "BackupOnlyWhenDatabaseHasChanged"
)

// Getter is the read side of an INI config, e.g. *iniconfig.Config.
type Getter interface {
	GetValue(section, key string, lowercase bool) (string, bool, error)
}

// Setter is the write side of an INI config, e.g. *iniconfig.Config.
type Setter interface {
	SetValue(section, key, value string, lowercase bool) error
}

// Settings holds the backup settings.
//
// Fields:
// - BackupPath: target directory, with %AppData% already expanded
// - BackupInSourceDir: true if BackupPath was empty, backups go next to the database
// - BackupExclusions: glob patterns of databases that are never backed up
// - BackupsPreserve: number of backups to keep per database
// - BackupOnDatabaseExit: back up when a database is closed
// - BackupOnDatabaseChange: back up every time a database is saved
// - BackupOnlyWhenDatabaseHasChanged: skip the backup if nothing was modified
type Settings struct {
	BackupPath                       string   `yaml:"backup_path"`
	BackupInSourceDir                bool     `yaml:"backup_in_source_dir"`
	BackupExclusions                 []string `yaml:"backup_exclusions,omitempty"`
	BackupsPreserve                  int      `yaml:"backups_preserve"`
	BackupOnDatabaseExit             bool     `yaml:"backup_on_database_exit"`
	BackupOnDatabaseChange           bool     `yaml:"backup_on_database_change"`
	BackupOnlyWhenDatabaseHasChanged bool     `yaml:"backup_only_when_database_has_changed"`
}

// DefaultPath returns the default location of the settings file,
// e.g. $XDG_CONFIG_HOME/autobackup/autobackup.ini.
func DefaultPath() string {
	return filepath.Join(appdir.New(Name).UserConfig(), Name+".ini")
}

// Defaults returns the settings written to a freshly initialized file.
func Defaults() *Settings {
	return &Settings{
		BackupInSourceDir: true,
		BackupsPreserve:   5,
	}
}

// Load reads all settings from the [config] section.
//
// Missing string and boolean settings fall back to their zero value.
// BackupsPreserve is required: a missing or non-numeric value yields an
// *InvalidValueError (errors.Is(err, ErrInvalidConfiguration)). Errors
// from the underlying config (e.g. an unreadable file) are returned as is.
func Load(cfg Getter) (*Settings, error) {
	s := &Settings{}

	path, err := get(cfg, KeyBackupPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) != "" {
		s.BackupPath = ExpandAppData(path)
	} else {
		s.BackupInSourceDir = true
	}

	exclusions, err := get(cfg, KeyBackupExclusions)
	if err != nil {
		return nil, err
	}
	s.BackupExclusions = splitExclusions(exclusions)

	preserve, err := get(cfg, KeyBackupsPreserve)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(preserve)
	if err != nil {
		return nil, &InvalidValueError{Key: KeyBackupsPreserve, Value: preserve, Err: err}
	}
	if n < 0 {
		return nil, &InvalidValueError{Key: KeyBackupsPreserve, Value: preserve}
	}
	s.BackupsPreserve = n

	for key, dst := range map[string]*bool{
		KeyBackupOnDatabaseExit:             &s.BackupOnDatabaseExit,
		KeyBackupOnDatabaseChange:           &s.BackupOnDatabaseChange,
		KeyBackupOnlyWhenDatabaseHasChanged: &s.BackupOnlyWhenDatabaseHasChanged,
	} {
		v, err := get(cfg, key)
		if err != nil {
			return nil, err
		}
		*dst = parseBool(v)
	}

	debug.V(1).Log("loaded settings: %+v", s)

	return s, nil
}

// Save writes all settings to the [config] section. BackupPath is written
// as is, an empty value is written if BackupInSourceDir is set.
func (s *Settings) Save(cfg Setter) error {
	path := s.BackupPath
	if s.BackupInSourceDir {
		path = ""
	}

	for _, kv := range [][2]string{
		{KeyBackupPath, path},
		{KeyBackupExclusions, strings.Join(s.BackupExclusions, "|")},
		{KeyBackupsPreserve, strconv.Itoa(s.BackupsPreserve)},
		{KeyBackupOnDatabaseExit, strconv.FormatBool(s.BackupOnDatabaseExit)},
		{KeyBackupOnDatabaseChange, strconv.FormatBool(s.BackupOnDatabaseChange)},
		{KeyBackupOnlyWhenDatabaseHasChanged, strconv.FormatBool(s.BackupOnlyWhenDatabaseHasChanged)},
	} {
		if err := cfg.SetValue(Section, kv[0], kv[1], false); err != nil {
			return fmt.Errorf("failed to save %s: %w", kv[0], err)
		}
	}

	return nil
}

// ExpandAppData replaces %AppData% with the per-user application data
// directory (the parent of the per-application config dir).
func ExpandAppData(path string) string {
	if !strings.Contains(path, AppDataPlaceholder) {
		return path
	}

	return strings.ReplaceAll(path, AppDataPlaceholder, appData())
}

func appData() string {
	return filepath.Dir(appdir.New(Name).UserConfig())
}

func get(cfg Getter, key string) (string, error) {
	v, found, err := cfg.GetValue(Section, key, false)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found {
		debug.V(3).Log("setting %s not configured", key)
	}

	return v, nil
}

// parseBool accepts exactly "true", "yes" and "1". Anything else,
// including "True" or "YES", is false.
func parseBool(v string) bool {
	switch v {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

func splitExclusions(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}

	out := make([]string, 0, strings.Count(v, "|")+1)
	for _, e := range strings.Split(v, "|") {
		if e == "" {
			continue
		}
		out = append(out, e)
	}

	return out
}

// Package backup creates timestamped copies of database files and rotates
// old copies according to the loaded settings.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/gopass/pkg/set"
	"github.com/gopasspw/iniconfig/settings"
)

var (
	// ErrNoBackupPath indicates that no target directory could be determined.
	ErrNoBackupPath = errors.New("no backup path")
	// ErrExcluded indicates the database matches one of the configured exclusions.
	ErrExcluded = errors.New("database excluded from backups")
)

// Name returns the file name of a backup of database taken at t,
// e.g. "db_20240131_0915.kdbx" for "db.kdbx".
func Name(database string, t time.Time) string {
	base, ext := splitName(filepath.Base(database))

	return base + "_" + t.Format(TimestampFormat) + ext
}

// Create copies database into dir using the name returned by Name and
// returns the path of the copy. dir is created if necessary and an existing
// backup with the same name is overwritten.
func Create(database, dir string, now time.Time) (string, error) {
	if dir == "" {
		return "", ErrNoBackupPath
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory %q: %w", dir, err)
	}

	target := filepath.Join(dir, Name(database, now))
	if err := copyFile(database, target); err != nil {
		return "", fmt.Errorf("failed to copy %q to %q: %w", database, target, err)
	}

	debug.V(1).Log("created backup %s", target)

	return target, nil
}

// List returns all backups of database in dir, oldest first.
func List(database, dir string) ([]string, error) {
	base, ext := splitName(filepath.Base(database))

	g, err := glob.Compile(backupPattern(base, ext))
	if err != nil {
		return nil, fmt.Errorf("invalid backup pattern for %q: %w", database, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups in %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !g.Match(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}

	// the timestamp has a fixed width so lexical order is chronological
	names = set.Sorted(names)

	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, filepath.Join(dir, n))
	}

	return out, nil
}

// Clean removes the oldest backups of database in dir until at most
// preserve remain. It returns the removed files.
func Clean(database, dir string, preserve int) ([]string, error) {
	if dir == "" {
		return nil, ErrNoBackupPath
	}

	backups, err := List(database, dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(backups))
	for i, fn := range backups {
		if len(backups)-i <= preserve {
			break
		}
		if err := os.Remove(fn); err != nil {
			return removed, fmt.Errorf("failed to remove old backup %q: %w", fn, err)
		}
		debug.V(1).Log("removed old backup %s", fn)
		removed = append(removed, fn)
	}

	return removed, nil
}

// Excluded reports if database matches any of the exclusion globs. Patterns
// are matched against the full (slash separated) path and the base name.
// Invalid patterns are ignored.
func Excluded(database string, exclusions []string) bool {
	full := filepath.ToSlash(database)
	base := filepath.Base(database)

	for _, pattern := range exclusions {
		for _, s := range []string{full, base} {
			match, err := globMatch(pattern, s)
			if err != nil {
				debug.V(1).Log("invalid exclusion pattern %q: %s", pattern, err)

				break
			}
			if match {
				debug.V(2).Log("%s excluded by %q", database, pattern)

				return true
			}
		}
	}

	return false
}

// Dir returns the directory backups of database are written to.
func Dir(database string, s *settings.Settings) string {
	if s.BackupInSourceDir {
		return filepath.Dir(database)
	}

	return s.BackupPath
}

// Run creates a backup of database and rotates old backups as configured
// in s. It returns the created backup and the removed old ones.
func Run(database string, s *settings.Settings, now time.Time) (string, []string, error) {
	if Excluded(database, s.BackupExclusions) {
		return "", nil, fmt.Errorf("%w: %s", ErrExcluded, database)
	}

	dir := Dir(database, s)

	target, err := Create(database, dir, now)
	if err != nil {
		return "", nil, err
	}

	removed, err := Clean(database, dir, s.BackupsPreserve)
	if err != nil {
		return target, removed, err
	}

	return target, removed, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()

		return err
	}

	return out.Close()
}

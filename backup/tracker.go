package backup

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/iniconfig/settings"
)

// Notifier presents the outcome of a backup to the user.
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}

// DebugNotifier reports through the debug log only.
type DebugNotifier struct{}

// Info implements Notifier.
func (DebugNotifier) Info(title, message string) {
	debug.Log("%s: %s", title, message)
}

// Error implements Notifier.
func (DebugNotifier) Error(title, message string) {
	debug.Log("ERROR %s: %s", title, message)
}

// Tracker decides when to back up databases based on the lifecycle events
// of the hosting application. It remembers for every open database if it
// has unsaved-to-backup modifications.
//
// The host calls:
// - Opened when a database was opened
// - Saving right before a database is written, with its modified flag
// - Saved after a database was written
// - Closed after a database was closed
//
// Note: Tracker is not thread-safe. The host must deliver events from a
// single goroutine.
type Tracker struct {
	settings *settings.Settings
	notifier Notifier
	now      func() time.Time
	pending  map[string]bool
}

// NewTracker returns a Tracker using the given settings. A nil notifier
// reports to the debug log.
func NewTracker(s *settings.Settings, n Notifier) *Tracker {
	if n == nil {
		n = DebugNotifier{}
	}

	return &Tracker{
		settings: s,
		notifier: n,
		now:      time.Now,
		pending:  make(map[string]bool, 4),
	}
}

// Opened starts tracking database.
func (t *Tracker) Opened(database string) {
	t.pending[key(database)] = false
}

// Saving records whether database has been modified. When backups only
// happen on exit, a pending modification is kept until the backup ran.
func (t *Tracker) Saving(database string, modified bool) {
	k := key(database)
	if t.settings.BackupOnDatabaseExit && !t.settings.BackupOnDatabaseChange {
		if modified {
			t.pending[k] = true
		}

		return
	}

	t.pending[k] = modified
}

// Saved backs up database if backups on change are enabled.
func (t *Tracker) Saved(database string) error {
	if !t.settings.BackupOnDatabaseChange {
		return nil
	}

	return t.backup(database)
}

// Closed backs up database if backups on exit are enabled and stops
// tracking it.
func (t *Tracker) Closed(database string) error {
	var err error
	if t.settings.BackupOnDatabaseExit {
		err = t.backup(database)
	}

	delete(t.pending, key(database))

	return err
}

// Pending reports if database has modifications not yet backed up.
func (t *Tracker) Pending(database string) bool {
	return t.pending[key(database)]
}

func (t *Tracker) backup(database string) error {
	k := key(database)

	modified, tracked := t.pending[k]
	if !tracked {
		debug.V(1).Log("not backing up untracked database %s", database)

		return nil
	}
	if t.settings.BackupOnlyWhenDatabaseHasChanged && !modified {
		debug.V(2).Log("not backing up unchanged database %s", database)

		return nil
	}

	target, removed, err := Run(k, t.settings, t.now())
	if errors.Is(err, ErrExcluded) {
		debug.V(1).Log("%s", err)

		return nil
	}
	if err != nil {
		msg := fmt.Sprintf("Error creating backup of %q: %s", k, err)
		t.notifier.Error("Backup failed", msg)

		return err
	}

	t.pending[k] = false
	t.notifier.Info("Backup created", fmt.Sprintf("Backup created successfully: %s (removed %d old backups)", target, len(removed)))

	return nil
}

func key(database string) string {
	abs, err := filepath.Abs(database)
	if err != nil {
		return filepath.Clean(database)
	}

	return abs
}

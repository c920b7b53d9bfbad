// Package iniconfig implements a small, formatting preserving reader and writer
// for INI style configuration files.
//
// The supported format is deliberately simple:
//
//	; a comment
//	[config]
//	BackupPath=%AppData%\Backups
//	BackupsPreserve=10
//
//   - Section headers are `[name]`. Names are compared ignoring case and whitespace.
//   - Entries are `key=value`, split at the first '='. Keys are compared ignoring case.
//   - Lines starting with ';' are comments, empty lines are ignored.
//   - There is no quoting, escaping, nesting or multi-line values.
//
// # Usage
//
// A Config is a thin handle on a file path. It does not cache anything: every
// call reads the whole file and every write rewrites it. This keeps external
// edits visible between calls at the cost of a little I/O, which is fine for
// files of a few hundred lines.
//
//	cfg := iniconfig.New("autobackup.ini")
//	if err := cfg.SetValue("config", "BackupsPreserve", "10", false); err != nil {
//		return err
//	}
//	v, ok, err := cfg.GetValue("Config", "backupspreserve", false)
//
// # Writing
//
// SetValue only touches the lines it has to. Updating a key rewrites that one
// line, a new key is appended at the end of its section and a new section is
// appended at the end of the file (after a blank line). Everything else,
// including comments and unrelated sections, is written back unchanged.
//
// The building blocks (Classify, FindSection, ExtractSection, MergeSection and
// Upsert) are exported and operate on plain line slices, so they can be used
// without touching the file system.
//
// # Error Handling
//
// Missing sections and keys are not errors. GetValue reports them with ok == false
// and GetSection returns an empty slice. Errors are returned only for invalid
// input and for I/O failures:
//
//	if err := cfg.SetValue("config", "", "x", false); errors.Is(err, iniconfig.ErrInvalidKey) {
//		// handle invalid key
//	}
//
//	if _, _, err := cfg.GetValue("config", "x", false); errors.Is(err, iniconfig.ErrReadConfig) {
//		// file missing or not readable
//	}
//
// # Known limitations
//
// * There is no locking. Concurrent writers lose updates (last write wins)
// * A write is not atomic, a crash while writing can leave a truncated file
// * Whitespace inside a rewritten line is normalized to `key=value`
// * Line endings follow the first line break of the file, mixed endings are normalized
// * A missing newline after the last line is added on write
// * Line breaks in values can not be stored, SetValue returns ErrInvalidValue
package iniconfig

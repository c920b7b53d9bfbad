package iniconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/gopass/pkg/set"
)

// Config provides access to a single INI style configuration file.
//
// Config does not cache anything. Every operation reads the whole file
// from disk and every write rewrites the whole file, so edits made by
// other programs between two calls are always picked up.
//
// Writes preserve everything they do not touch: comments, blank lines,
// other sections and the order of all lines stay exactly as they were.
//
// Note: Config is not safe for concurrent writers. Two writers racing on
// the same file will silently lose one of the updates (last write wins).
//
// Typical Usage:
//
//	cfg := iniconfig.New("settings.ini")
//	value, ok, err := cfg.GetValue("config", "BackupPath", false)
//	if err != nil { ... }
//	if err := cfg.SetValue("config", "BackupsPreserve", "10", false); err != nil { ... }
type Config struct {
	path string
}

// New returns a Config backed by the file at path. The file is not
// accessed until the first operation.
func New(path string) *Config {
	return &Config{path: path}
}

// Create returns a Config backed by the file at path and creates an empty
// file (including its directory) if none exists yet.
func Create(path string) (*Config, error) {
	c := New(path)

	if _, err := os.Stat(path); err == nil {
		return c, nil
	}

	if err := c.write(nil, newline); err != nil {
		return nil, err
	}

	debug.V(1).Log("created empty config at %s", path)

	return c, nil
}

// Path returns the location of the backing file.
func (c *Config) Path() string {
	return c.path
}

// GetSection returns the body of a section with blank lines removed and
// all lines trimmed. Comments are only included if includeComments is set.
//
// Section names are matched ignoring case and whitespace, e.g. "Config",
// "config" and "[ config ]" all refer to the same section.
//
// A section that does not exist yields an empty slice, not an error.
// Errors are only returned if the file can not be read.
func (c *Config) GetSection(section string, includeComments bool) ([]string, error) {
	lines, err := c.read()
	if err != nil {
		return nil, err
	}

	return ExtractSection(lines, section, includeComments), nil
}

// GetValue returns the value of key in section.
//
// The key is matched case-insensitively. The value is everything after the
// first '=' of the entry, trimmed. If lowercase is set the value is returned
// in lower case.
//
// Returns ("", false, nil) if the section or the key do not exist.
//
// Example:
//
//	v, ok, err := cfg.GetValue("config", "BackupPath", false)
//	if err != nil {
//	  return err
//	}
//	if !ok {
//	  // not configured
//	}
func (c *Config) GetValue(section, key string, lowercase bool) (string, bool, error) {
	lines, err := c.GetSection(section, false)
	if err != nil {
		return "", false, err
	}

	key = strings.TrimSpace(key)
	for _, line := range lines {
		l := Classify(line)
		if l.Kind != KeyValue || !strings.EqualFold(l.Key, key) {
			continue
		}

		if lowercase {
			return strings.ToLower(l.Value), true, nil
		}

		return l.Value, true, nil
	}

	debug.V(3).Log("no value for %s.%s in %s", section, key, c.path)

	return "", false, nil
}

// SetValue updates or adds key in section and writes the file.
//
// Behavior:
// - If the file is empty it will contain only "[section]" and "key=value"
// - If the section is missing it is appended at the end of the file
// - If the key is missing it is appended as the last line of the section
// - Otherwise the first matching entry is replaced, nothing else changes
//
// The whole file is always rewritten, even if the value did not change.
// If lowercase is set the value is stored in lower case.
//
// Errors:
// - ErrInvalidSection if the section name is empty or spans several lines
// - ErrInvalidKey if the key is empty, starts with ';' or '[', or contains '=' or a line break
// - ErrInvalidValue if the value contains a line break
// - ErrReadConfig / ErrWriteConfig if the file can not be read or written
func (c *Config) SetValue(section, key, value string, lowercase bool) error {
	if err := validate(section, key, value); err != nil {
		return err
	}
	key = strings.TrimSpace(key)

	lines, eol, err := c.readDoc()
	if err != nil {
		return err
	}

	debug.V(3).Log("input (%s.%s: %s): \n--------------\n%s\n--------------\n", section, key, value, strings.Join(strings.Split("- "+strings.Join(lines, "\n"), "\n"), "\n- "))

	lines = Upsert(lines, section, key, value, lowercase)

	debug.V(3).Log("output: \n--------------\n%s\n--------------\n", strings.Join(strings.Split("+ "+strings.Join(lines, "\n"), "\n"), "\n+ "))

	return c.write(lines, eol)
}

// validate rejects input that would not read back as the same single
// "key=value" entry below a single header.
func validate(section, key, value string) error {
	if strings.Trim(stripSpace(section), "[]") == "" || hasLineBreak(section) {
		return fmt.Errorf("%w: %q", ErrInvalidSection, section)
	}

	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, "=\r\n") || strings.HasPrefix(key, "[") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if l := Classify(key + "=x"); l.Kind != KeyValue || l.Key != key {
		return fmt.Errorf("%w: %q reads back as %s", ErrInvalidKey, key, l.Kind)
	}

	if hasLineBreak(value) {
		return fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}

	return nil
}

// Sections returns the sorted names of all sections in the file. Sections
// that only differ in case or whitespace are reported once, using the
// spelling of their first header.
func (c *Config) Sections() ([]string, error) {
	lines, err := c.read()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, 8)
	names := make([]string, 0, 8)
	for _, raw := range lines {
		l := Classify(raw)
		if l.Kind != SectionHeader || l.Name == "" {
			continue
		}
		id := headerID(l)
		if _, found := seen[id]; found {
			continue
		}
		seen[id] = struct{}{}
		names = append(names, l.Name)
	}

	return set.Sorted(names), nil
}

// Keys returns the keys of all entries in section in file order.
func (c *Config) Keys(section string) ([]string, error) {
	lines, err := c.GetSection(section, false)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(lines))
	for _, line := range lines {
		if l := Classify(line); l.Kind == KeyValue {
			keys = append(keys, l.Key)
		}
	}

	return keys, nil
}

// read loads all lines of the backing file. A trailing '\r' is removed
// from every line so CRLF files compare like LF files.
func (c *Config) read() ([]string, error) {
	lines, _, err := c.readDoc()

	return lines, err
}

// readDoc loads all lines of the backing file together with the line
// ending used by the file. Files without any line break report the
// platform newline. Lines are not limited in length.
func (c *Config) readDoc() ([]string, string, error) {
	buf, err := os.ReadFile(c.path)
	if err != nil {
		return nil, "", fmt.Errorf("%w from %s: %w", ErrReadConfig, c.path, err)
	}

	eol := newline
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		eol = "\n"
		if i > 0 && buf[i-1] == '\r' {
			eol = "\r\n"
		}
	}

	if len(buf) == 0 {
		debug.V(3).Log("read 0 lines from %s", c.path)

		return []string{}, eol, nil
	}

	lines := strings.Split(strings.TrimSuffix(string(buf), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	debug.V(3).Log("read %d lines from %s (eol %q)", len(lines), c.path, eol)

	return lines, eol, nil
}

// write replaces the backing file with the given lines, each terminated by
// eol.
func (c *Config) write(lines []string, eol string) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("%w %q for %q: %w", ErrCreateConfigDir, filepath.Dir(c.path), c.path, err)
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString(eol)
	}

	debug.V(3).Log("writing config to %s: \n--------------\n%s\n--------------", c.path, sb.String())

	if err := os.WriteFile(c.path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("%w to %s: %w", ErrWriteConfig, c.path, err)
	}

	debug.V(1).Log("wrote config to %s", c.path)

	return nil
}

package backup

import (
	"strings"

	"github.com/gobwas/glob"
)

// TimestampFormat is the layout of the timestamp appended to backup file names.
const TimestampFormat = "20060102_1504"

// globMatch implements a glob matcher that supports double-asterisk (**) patterns.
func globMatch(pattern, s string) (bool, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return false, err
	}

	return g.Match(s), nil
}

// backupPattern returns the glob matching all backups of a database file
// called base+ext, i.e. <base>_YYYYMMDD_HHMM<ext>.
func backupPattern(base, ext string) string {
	return glob.QuoteMeta(base) + "_" + strings.Repeat("[0-9]", 8) + "_" + strings.Repeat("[0-9]", 4) + glob.QuoteMeta(ext)
}

// splitName splits a file name into its base name and extension.
// "db.kdbx" becomes ("db", ".kdbx").
func splitName(name string) (string, string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}

	return name[:i], name[i:]
}

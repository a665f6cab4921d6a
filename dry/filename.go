package dry

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reoring/dryc"
)

var (
	idRe       = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	filenameRe = regexp.MustCompile(`^([A-Za-z0-9_-]+)(?:\.([A-Za-z0-9_-]+))?$`)
)

// SplitFilename derives the document id and optional type from a filename of
// the form <id>[.<type>]<ext>. Directories and the final extension are ignored.
func SplitFilename(filename string) (id, typ string, err error) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	m := filenameRe.FindStringSubmatch(stem)
	if m == nil {
		return "", "", dryc.Errorf(dryc.CodeFilename, "Cannot extract id or type from filename '%s'", base)
	}
	return m[1], m[2], nil
}

// IsID reports whether s matches the identifier grammar [A-Za-z0-9_-]+.
func IsID(s string) bool { return idRe.MatchString(s) }

package downloadmgr

import (
	"path/filepath"
	"strings"
)

// filenameFromDisposition extracts the quoted filename of a Content-Disposition
// header like `attachment; filename="rls_career_overhaul_2.6.2.zip"`.
// Only the base name is returned so a server can not write outside of the target dir.
func filenameFromDisposition(header string) (string, bool) {
	const marker = `filename="`
	start := strings.Index(header, marker)
	if start == -1 {
		return "", false
	}
	rest := header[start+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end == -1 {
		return "", false
	}

	name := rest[:end]
	// windows servers send backslashes
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return "", false
	}
	return name, true
}

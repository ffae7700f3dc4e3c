package broker

import (
	"fmt"
	"mime"
	"regexp"
	"strings"
	"time"
)

const fallbackDownloadName = "download"

var uploadPrefix = regexp.MustCompile(`^\d+_`)

// sanitizeFileName maps every rune outside [A-Za-z0-9._-] to '_' and cuts
// the result to maxLen. The output never contains a path separator.
func sanitizeFileName(name string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// uploadKey places an upload under resources/ with a millisecond prefix.
func uploadKey(now time.Time, sanitized string) string {
	return fmt.Sprintf("resources/%d_%s", now.UnixMilli(), sanitized)
}

// displayName recovers the user-facing file name from a storage key.
func displayName(storageKey string) string {
	name := storageKey
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = uploadPrefix.ReplaceAllString(name, "")
	if name == "" {
		return fallbackDownloadName
	}
	return name
}

// contentDisposition renders an attachment header for name, quoting plain
// ASCII names and falling back to RFC 2231 encoding for the rest.
func contentDisposition(name string) string {
	if plainASCII(name) {
		return `attachment; filename="` + name + `"`
	}
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return `attachment; filename="` + fallbackDownloadName + `"`
}

func plainASCII(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return false
		}
	}
	return true
}

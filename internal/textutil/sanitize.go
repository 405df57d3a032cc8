package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// maxTokenLength bounds the readable part of a PathToken.
const maxTokenLength = 48

// SanitizeToken converts a string to a lowercase filesystem-safe token.
// Letters are lowercased, digits and hyphens/underscores are kept, everything
// else becomes an underscore. Returns "unknown" for empty input.
func SanitizeToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}

// PathToken names a filesystem path with a readable token followed by a
// digest of the cleaned path, so distinct paths never share a token even when
// they sanitize alike. The readable part comes from the last directory and
// file name.
func PathToken(path string) string {
	cleaned := filepath.Clean(path)
	sum := sha256.Sum256([]byte(cleaned))
	digest := hex.EncodeToString(sum[:])[:12]

	tail := filepath.Base(cleaned)
	if parent := filepath.Base(filepath.Dir(cleaned)); parent != "." && parent != string(filepath.Separator) {
		tail = parent + "_" + tail
	}
	readable := SanitizeToken(tail)
	if len(readable) > maxTokenLength {
		readable = strings.Trim(readable[len(readable)-maxTokenLength:], "_-")
	}
	return readable + "-" + digest
}

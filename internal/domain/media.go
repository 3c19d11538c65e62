package domain

import (
	"fmt"
	"strings"
	"time"
)

// ClassifyMedia maps a file's declared content type to a MediaType.
// Classification is decided once at submission time from the declared type
// only; it is never re-derived from file bytes or the filename, so a missing
// or spoofed content type yields MediaNone.
func ClassifyMedia(contentType string) MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaImage
	case strings.HasPrefix(contentType, "video/"):
		return MediaVideo
	default:
		return MediaNone
	}
}

// ObjectKey derives a storage key for an uploaded file from the event ID,
// the submission time, and the untrusted original filename. The filename is
// lowercased and every character outside [a-z0-9._-] is replaced with '_',
// so the key never contains a path separator or traversal sequence past the
// event prefix. Millisecond timestamps make collisions within an event
// negligible; there is no retry on collision.
func ObjectKey(eventID string, at time.Time, filename string) string {
	return fmt.Sprintf("%s/%d-%s", eventID, at.UnixMilli(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

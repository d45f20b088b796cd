package main

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

// Format of the datetime-local input type
const datetimeLocalFormat = "2006-01-02T15:04"

func localTimeString(t time.Time) string {
	return t.Local().Format(datetimeLocalFormat)
}

func dbTimeString(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// sanitizeFilename reduces an uploaded filename to its base name with only
// safe characters, the way the original name is still recognizable
func sanitizeFilename(name string) string {
	// Strip any path components, also windows-style ones
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	b := strings.Builder{}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.' || c == '-' || c == '_':
			b.WriteRune(c)
		case c == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

func generateRandomString(chars int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, chars)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return ""
		}
		b[i] = letters[num.Int64()]
	}
	return string(b)
}

// Package meta resolves ${env.KEY} references in configuration text.
package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// ExpandEnv replaces every ${env.KEY} in text with the value of the
// environment variable KEY, or "" when it is unset. A reference without a
// closing brace is kept verbatim. When KEY has characters other than letters,
// digits and '_', only the prefix is kept and scanning resumes after it.
func ExpandEnv(text string) string {
	if !strings.Contains(text, envPrefix) {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	rest := text
	for {
		at := strings.Index(rest, envPrefix)
		if at < 0 {
			out.WriteString(rest)
			return out.String()
		}
		out.WriteString(rest[:at])
		rest = rest[at+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			out.WriteString(envPrefix)
			out.WriteString(rest)
			return out.String()
		}
		key := rest[:end]
		if !isKey(key) {
			out.WriteString(envPrefix)
			continue
		}
		out.WriteString(os.Getenv(key))
		rest = rest[end+1:]
	}
}

func isKey(key string) bool {
	for _, r := range key {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Package envfile loads KEY=VALUE configuration files into the process
// environment and validates the settings the governance backend needs.
package envfile

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultPath is the conventional dotfile read from the working directory.
const DefaultPath = ".env"

// Load reads the env file at path and sets each parsed key that is not
// already present in the environment. Existing variables are never
// overwritten. A missing file is a no-op; any other read failure is
// logged as a warning and swallowed.
func Load(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warnf("could not read env file %s", path)
		}
		return
	}

	for _, raw := range strings.Split(string(data), "\n") {
		key, value, ok := ParseLine(raw)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		os.Setenv(key, value)
	}
}

// Lookup resolves key without mutating the process environment: a
// non-empty OS-level value wins, otherwise the env file at path is
// parsed fresh and its value returned. Empty string means unset in
// both places. Repeated calls observe edits to the file, which Load
// cannot once a key has been set.
func Lookup(path, key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, raw := range strings.Split(string(data), "\n") {
		k, v, ok := ParseLine(raw)
		if ok && k == key {
			return v
		}
	}
	return ""
}

// ParseLine splits one env file line into key and value. Blank lines,
// comments, and lines without a separator report ok=false and are
// skipped by the loader. Whitespace is trimmed from both sides of the
// separator and one layer of matching surrounding quotes (single or
// double) is stripped from the value.
func ParseLine(raw string) (key, value string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:idx])
	value = unquote(strings.TrimSpace(line[idx+1:]))
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

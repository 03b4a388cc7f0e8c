// Package fileutil names and writes export files.
package fileutil

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var unsafeRuns = regexp.MustCompile(`[^A-Za-z0-9-_]+`)

// SafeFileName maps name onto the safe filename alphabet: every maximal run
// of characters outside [A-Za-z0-9-_] collapses to one underscore. A blank
// name is replaced by fallback before sanitizing.
func SafeFileName(name, fallback string) string {
	base := name
	if strings.TrimSpace(base) == "" {
		base = fallback
	}
	return unsafeRuns.ReplaceAllString(base, "_")
}

// WriteExport writes an export document to path.
func WriteExport(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

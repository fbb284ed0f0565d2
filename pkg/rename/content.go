// File: pkg/rename/content.go
package rename

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ReplaceContent decodes data as UTF-8, substituting U+FFFD for any byte
// that does not decode, and replaces every occurrence of oldString with
// newString. It returns the re-encoded content and the number of replacements.
func ReplaceContent(data []byte, oldString, newString string) ([]byte, int, error) {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode content: %w", err)
	}
	if oldString == "" {
		return decoded, 0, nil
	}

	text := string(decoded)
	count := strings.Count(text, oldString)
	if count == 0 {
		return decoded, 0, nil
	}
	return []byte(strings.ReplaceAll(text, oldString, newString)), count, nil
}

// RewriteFile replaces oldString with newString in the file at path, in
// place. The file is always written back, even when nothing matched.
func RewriteFile(path, oldString, newString string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("error reading file %s: %w", path, err)
	}

	updated, count, err := ReplaceContent(data, oldString, newString)
	if err != nil {
		return 0, fmt.Errorf("error decoding file %s: %w", path, err)
	}

	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("error writing file %s: %w", path, err)
	}
	return count, nil
}

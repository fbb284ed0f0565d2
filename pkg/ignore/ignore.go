// Package ignore compiles the simplified .gitignore-style rules used to keep
// paths out of a rename run.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// DefaultFileName is the ignore file looked up in the root directory.
const DefaultFileName = ".gitignore"

// VCSDirName is always excluded, whatever the ignore file says.
const VCSDirName = ".git"

// IgnorePattern encapsulates a compiled regular expression pattern
// and metadata about the pattern's origin.
type IgnorePattern struct {
	Pattern *regexp.Regexp // Anchored expression matched against the whole path.
	Line    string         // Original pattern line, trimmed.
	LineNo  int            // Line number in the source (1-based).
}

// RuleSet is an ordered collection of ignore patterns.
type RuleSet struct {
	patterns []*IgnorePattern
	logger   *zap.Logger
}

// New returns an empty RuleSet. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger) *RuleSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleSet{
		patterns: []*IgnorePattern{},
		logger:   logger,
	}
}

// Load reads the ignore file called name inside root. A missing file is not
// an error and yields an empty RuleSet.
func Load(root, name string, logger *zap.Logger) (*RuleSet, error) {
	rs := New(logger)
	if name == "" {
		name = DefaultFileName
	}

	if err := rs.CompileIgnoreFile(filepath.Join(root, name)); err != nil {
		return nil, err
	}
	return rs, nil
}

// CompileIgnoreLines compiles a set of ignore pattern lines into the RuleSet.
// Line numbers continue from the patterns already present.
func (rs *RuleSet) CompileIgnoreLines(lines ...string) {
	offset := len(rs.patterns)
	for i, line := range lines {
		rs.add(line, offset+i+1)
	}
}

// CompileIgnoreFile reads an ignore file and compiles each of its lines.
func (rs *RuleSet) CompileIgnoreFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			rs.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", filePath))
			return nil
		}
		rs.logger.Error("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return fmt.Errorf("failed to read ignore file %s: %w", filePath, err)
	}

	before := len(rs.patterns)
	lines := splitLines(string(content))
	for i, line := range lines {
		rs.add(line, i+1)
	}
	rs.logger.Debug("Compiled ignore patterns from file",
		zap.String("filePath", filePath),
		zap.Int("lineCount", len(lines)),
		zap.Int("patternCount", len(rs.patterns)-before))
	return nil
}

func (rs *RuleSet) add(line string, lineNo int) {
	pattern := parsePatternLine(line)
	if pattern == nil {
		return
	}
	ip := &IgnorePattern{
		Pattern: pattern,
		Line:    strings.TrimSpace(line),
		LineNo:  lineNo,
	}
	rs.patterns = append(rs.patterns, ip)
	rs.logger.Debug("Compiled ignore pattern",
		zap.Int("lineNo", ip.LineNo),
		zap.String("pattern", ip.Line),
		zap.String("regex", ip.Pattern.String()))
}

// Len reports the number of compiled patterns.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.patterns)
}

// Patterns returns the compiled patterns in file order.
func (rs *RuleSet) Patterns() []*IgnorePattern {
	if rs == nil {
		return nil
	}
	return rs.patterns
}

// MatchesPath reports whether path is excluded.
func (rs *RuleSet) MatchesPath(path string) bool {
	matches, _ := rs.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern reports whether path is excluded and, when a pattern
// is responsible, returns the first one that matched. The VCS directory is
// excluded with a nil pattern.
func (rs *RuleSet) MatchesPathWithPattern(path string) (bool, *IgnorePattern) {
	if IsVCSDir(path) {
		return true, nil
	}
	if rs == nil {
		return false, nil
	}

	for _, p := range rs.patterns {
		if p.Pattern.MatchString(path) {
			rs.logger.Debug("Path matches pattern",
				zap.String("path", path),
				zap.String("pattern", p.Line),
				zap.Int("lineNo", p.LineNo))
			return true, p
		}
	}
	return false, nil
}

// IsVCSDir reports whether the final segment of path is the VCS metadata
// directory.
func IsVCSDir(path string) bool {
	if path == VCSDirName {
		return true
	}
	if strings.HasSuffix(path, "/"+VCSDirName) {
		return true
	}
	return strings.HasSuffix(path, string(os.PathSeparator)+VCSDirName)
}

// parsePatternLine turns one ignore line into an anchored expression.
// Returns nil for blank lines and comments.
func parsePatternLine(line string) *regexp.Regexp {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	expr := regexp.QuoteMeta(trimmed)
	expr = strings.ReplaceAll(expr, `\*`, ".*")
	expr = strings.ReplaceAll(expr, `\?`, ".?")

	// QuoteMeta output is always a valid expression.
	return regexp.MustCompile("^" + expr + "$")
}

// splitLines splits on \n, \r\n and lone \r.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

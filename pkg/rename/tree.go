// File: pkg/rename/tree.go
package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tplrename/pkg/ignore"

	"go.uber.org/zap"
)

// ErrNameCollision is returned when a rename target is already taken.
var ErrNameCollision = errors.New("rename target already exists")

// Summary counts what a run did (or, in dry-run mode, would do).
type Summary struct {
	FilesRenamed   int // Files whose name changed.
	FilesRewritten int // Files whose content was rewritten.
	DirsRenamed    int // Directories whose name changed.
	Replacements   int // Occurrences replaced inside file contents.
	Ignored        int // Entries excluded by the ignore rules.
	BinarySkipped  int // Files whose content was left alone because they look binary.
}

// treeRenamer carries the fixed parameters of one post-order walk.
type treeRenamer struct {
	args     *Arguments
	rules    *ignore.RuleSet
	logger   *zap.Logger
	excluded []fs.FileInfo
	summary  Summary
}

// RenameTree renames every entry under args.Root, children before parents,
// and rewrites the content of every renamed regular file. Entries whose
// root-relative path matches rules are left untouched and not descended into.
// The first failure aborts the walk; completed renames are not rolled back.
func RenameTree(args *Arguments, rules *ignore.RuleSet, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tr := &treeRenamer{args: args, rules: rules, logger: logger}
	for _, path := range args.ExcludePaths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Debug("Excluded path not found", zap.String("path", path), zap.Error(err))
			continue
		}
		tr.excluded = append(tr.excluded, info)
	}
	err := tr.walk(args.Root)
	return tr.summary, err
}

// walk processes one directory level after all of its subdirectories.
func (tr *treeRenamer) walk(directory string) error {
	entries, err := os.ReadDir(directory)
	if err != nil {
		tr.logger.Error("Failed to read directory", zap.String("directory", directory), zap.Error(err))
		return fmt.Errorf("failed to read directory '%s': %w", directory, err)
	}

	var dirs, files []fs.DirEntry
	for _, entry := range entries {
		entryPath := filepath.Join(directory, entry.Name())
		if tr.isExcluded(entryPath, entry) || tr.ignored(entryPath) {
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, entry)
		} else {
			files = append(files, entry)
		}
	}

	for _, d := range dirs {
		if err := tr.walk(filepath.Join(directory, d.Name())); err != nil {
			return err
		}
	}

	claimed := make(map[string]string, len(files)+len(dirs))
	for _, f := range files {
		newPath, err := tr.renameEntry(directory, f.Name(), claimed)
		if err != nil {
			return err
		}
		if newPath != filepath.Join(directory, f.Name()) {
			tr.summary.FilesRenamed++
		}
		if err := tr.rewrite(newPath, filepath.Join(directory, f.Name()), f); err != nil {
			return err
		}
	}

	for _, d := range dirs {
		newPath, err := tr.renameEntry(directory, d.Name(), claimed)
		if err != nil {
			return err
		}
		if newPath != filepath.Join(directory, d.Name()) {
			tr.summary.DirsRenamed++
		}
	}
	return nil
}

// isExcluded reports whether entry is one of the files in ExcludePaths,
// compared by identity so symlinked roots still match.
func (tr *treeRenamer) isExcluded(path string, entry fs.DirEntry) bool {
	if len(tr.excluded) == 0 {
		return false
	}
	info, err := entry.Info()
	if err != nil {
		return false
	}
	for _, ex := range tr.excluded {
		if os.SameFile(ex, info) {
			tr.logger.Debug("Skipping excluded path", zap.String("path", path))
			return true
		}
	}
	return false
}

// ignored applies the ignore predicate to the slash-separated path relative
// to the root.
func (tr *treeRenamer) ignored(path string) bool {
	relPath, err := filepath.Rel(tr.args.Root, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)

	matched, pattern := tr.rules.MatchesPathWithPattern(relPath)
	if !matched {
		return false
	}

	tr.summary.Ignored++
	if pattern != nil {
		tr.logger.Debug("Skipping ignored path",
			zap.String("path", relPath),
			zap.String("pattern", pattern.Line),
			zap.Int("lineNo", pattern.LineNo))
	} else {
		tr.logger.Debug("Skipping version control directory", zap.String("path", relPath))
	}
	return true
}

// renameEntry renames name inside directory and returns the resulting path.
// Names without the placeholder keep their entry and issue no rename.
func (tr *treeRenamer) renameEntry(directory, name string, claimed map[string]string) (string, error) {
	newName := strings.ReplaceAll(name, tr.args.OldString, tr.args.NewString)
	oldPath := filepath.Join(directory, name)
	newPath := filepath.Join(directory, newName)

	if newName != name {
		if err := checkTarget(newPath, newName, claimed); err != nil {
			tr.logger.Error("Rename target collision",
				zap.String("path", oldPath),
				zap.String("newPath", newPath),
				zap.Error(err))
			return "", fmt.Errorf("failed to rename %s: %w", oldPath, err)
		}
	}
	claimed[newName] = name

	if newName == name {
		return oldPath, nil
	}

	if tr.args.DryRun {
		tr.logger.Info("Would rename", zap.String("path", oldPath), zap.String("newPath", newPath))
		return newPath, nil
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		tr.logger.Error("Failed to rename", zap.String("path", oldPath), zap.String("newPath", newPath), zap.Error(err))
		return "", fmt.Errorf("failed to rename %s: %w", oldPath, err)
	}
	tr.logger.Debug("Renamed", zap.String("path", oldPath), zap.String("newPath", newPath))
	return newPath, nil
}

// checkTarget fails when newName was already claimed by a sibling in this
// pass or already exists on disk.
func checkTarget(newPath, newName string, claimed map[string]string) error {
	if prev, ok := claimed[newName]; ok {
		return fmt.Errorf("%w: %s (also produced by %q)", ErrNameCollision, newPath, prev)
	}
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%w: %s", ErrNameCollision, newPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// rewrite runs the content rewriter on a renamed file. Symlinks and other
// non-regular entries are never read.
func (tr *treeRenamer) rewrite(path, originalPath string, entry fs.DirEntry) error {
	if !entry.Type().IsRegular() {
		tr.logger.Debug("Skipping content of non-regular file", zap.String("filePath", path))
		return nil
	}

	readPath := path
	if tr.args.DryRun {
		readPath = originalPath
	}

	if tr.args.SkipBinary {
		isBinary, err := isBinaryFile(readPath)
		if err != nil {
			tr.logger.Error("Failed to check if file is binary", zap.String("filePath", readPath), zap.Error(err))
			return fmt.Errorf("failed to inspect file %s: %w", readPath, err)
		}
		if isBinary {
			tr.summary.BinarySkipped++
			tr.logger.Debug("Leaving binary file content untouched", zap.String("filePath", readPath))
			return nil
		}
	}

	if tr.args.DryRun {
		data, err := os.ReadFile(readPath)
		if err != nil {
			return fmt.Errorf("error reading file %s: %w", readPath, err)
		}
		_, count, err := ReplaceContent(data, tr.args.OldString, tr.args.NewString)
		if err != nil {
			return fmt.Errorf("error decoding file %s: %w", readPath, err)
		}
		if count > 0 {
			tr.summary.FilesRewritten++
			tr.summary.Replacements += count
			tr.logger.Info("Would rewrite", zap.String("filePath", readPath), zap.Int("replacements", count))
		}
		return nil
	}

	count, err := RewriteFile(path, tr.args.OldString, tr.args.NewString)
	if err != nil {
		tr.logger.Error("Failed to rewrite file", zap.String("filePath", path), zap.Error(err))
		return err
	}
	if count > 0 {
		tr.summary.FilesRewritten++
		tr.summary.Replacements += count
	}
	tr.logger.Debug("Rewrote file", zap.String("filePath", path), zap.Int("replacements", count))
	return nil
}

// Package rename replaces a template placeholder in file contents, file names
// and directory names across a project tree.
package rename

import (
	"fmt"
	"time"

	"tplrename/pkg/ignore"

	"go.uber.org/zap"
)

// Run validates args, loads the ignore rules from the root directory and
// renames the tree. It returns what was done.
func Run(args *Arguments, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	if err := args.Validate(); err != nil {
		logger.Error("Invalid arguments", zap.Error(err))
		return Summary{}, fmt.Errorf("invalid arguments: %w", err)
	}
	logger.Info("Starting rename",
		zap.String("root", args.Root),
		zap.String("oldString", args.OldString),
		zap.String("newString", args.NewString),
		zap.Bool("dryRun", args.DryRun))

	rules, err := ignore.Load(args.Root, args.IgnoreFile, logger)
	if err != nil {
		logger.Error("Failed to load ignore patterns", zap.Error(err))
		return Summary{}, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	if len(args.IgnorePatterns) > 0 {
		rules.CompileIgnoreLines(args.IgnorePatterns...)
		logger.Debug("Added command-line ignore patterns", zap.Int("count", len(args.IgnorePatterns)))
	}
	logger.Debug("Loaded ignore patterns", zap.Int("totalPatterns", rules.Len()))

	summary, err := RenameTree(args, rules, logger)
	if err != nil {
		return summary, fmt.Errorf("rename aborted: %w", err)
	}

	logger.Info("Rename completed",
		zap.Int("filesRenamed", summary.FilesRenamed),
		zap.Int("filesRewritten", summary.FilesRewritten),
		zap.Int("dirsRenamed", summary.DirsRenamed),
		zap.Int("replacements", summary.Replacements),
		zap.Int("ignored", summary.Ignored),
		zap.Int("binarySkipped", summary.BinarySkipped),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

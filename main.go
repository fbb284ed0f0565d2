package main

import (
	"context"
	"log"
	"os"
	"strings"

	"tplrename/cmd"
	"tplrename/pkg/logging"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	err := cmd.Execute(context.Background())

	if logger := logging.Logger; logger != nil {
		if err != nil {
			logger.Error("tplrename execution failed", zap.Error(err))
		}
		syncLogger(logger)
	}

	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the logger when stderr can be synced. Terminals and
// pipes report "invalid argument" on sync, which is harmless.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}

// File: pkg/rename/binary.go
package rename

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BinaryExtensions lists extensions treated as binary without sniffing.
var BinaryExtensions = map[string]bool{
	".dll": true, ".exe": true, ".pdb": true, ".so": true, ".dylib": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".bmp": true,
	".zip": true, ".gz": true, ".tar": true, ".7z": true, ".nupkg": true,
	".pdf": true, ".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
}

// isBinaryFile checks if a file is likely to be binary by reading its first few bytes
// and checking for null bytes or a high ratio of non-printable characters
func isBinaryFile(filePath string) (bool, error) {
	if isCommonBinaryExtension(filePath) {
		return true, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return looksBinary(buffer[:n]), nil
}

// looksBinary applies the sniffing rules to a prefix of the file.
func looksBinary(buffer []byte) bool {
	if len(buffer) == 0 {
		return false // Empty files are considered text
	}
	if bytes.Contains(buffer, []byte{0}) {
		return true
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3
}

// isPrintable reports whether b is printable ASCII, common whitespace, or
// part of a multi-byte UTF-8 sequence.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}

func isCommonBinaryExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return BinaryExtensions[ext]
}

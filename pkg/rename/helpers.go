// File: pkg/rename/helpers.go
package rename

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ProjectNamePrompt is shown before reading the new project name.
const ProjectNamePrompt = "Your project name: "

// PromptProjectName writes the prompt to w and reads one line from r.
// Only the line terminator is removed; everything else is kept verbatim.
func PromptProjectName(r io.Reader, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, ProjectNamePrompt); err != nil {
		return "", err
	}

	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || response == "" {
			return "", fmt.Errorf("failed to read project name: %w", err)
		}
	}

	response = strings.TrimSuffix(response, "\n")
	response = strings.TrimSuffix(response, "\r")
	return response, nil
}

// ConfirmationMessage is printed once the tree has been renamed.
func ConfirmationMessage(newString string) string {
	return fmt.Sprintf("Project name successfully set to %s", newString)
}

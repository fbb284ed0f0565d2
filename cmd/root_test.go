package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupTemplate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "AspAdvancedApp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.txt"), []byte("Welcome to AspAdvancedApp!"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestRootCmdPromptsForName(t *testing.T) {
	root := setupTemplate(t)

	out, err := runCmd(t, "MyApp\n", "--root", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.HasPrefix(out, "Your project name: ") {
		t.Errorf("output %q does not start with the prompt", out)
	}
	if !strings.Contains(out, "Project name successfully set to MyApp\n") {
		t.Errorf("output %q lacks confirmation", out)
	}

	data, err := os.ReadFile(filepath.Join(root, "MyApp", "config.txt"))
	if err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if string(data) != "Welcome to MyApp!" {
		t.Errorf("content = %q", data)
	}
}

func TestRootCmdNameFlag(t *testing.T) {
	root := setupTemplate(t)

	out, err := runCmd(t, "", "--root", root, "--name", "Contoso", "--ignore", "AspAdvancedApp/config.txt")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "Your project name") {
		t.Errorf("prompt shown although --name was set: %q", out)
	}

	data, err := os.ReadFile(filepath.Join(root, "Contoso", "config.txt"))
	if err != nil {
		t.Fatalf("renamed dir missing: %v", err)
	}
	if string(data) != "Welcome to AspAdvancedApp!" {
		t.Errorf("ignored file was rewritten: %q", data)
	}
}

func TestRootCmdConfigFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "TemplateApp.txt"), []byte("TemplateApp"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".tplrename.yaml"), []byte("placeholder: TemplateApp\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCmd(t, "", "--root", root, "-n", "Acme"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "Acme.txt"))
	if err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if string(data) != "Acme" {
		t.Errorf("content = %q", data)
	}
}

func TestRootCmdIgnoreFileEnv(t *testing.T) {
	root := setupTemplate(t)
	if err := os.WriteFile(filepath.Join(root, ".renameignore"), []byte("AspAdvancedApp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(IgnoreFileEnv, ".renameignore")

	if _, err := runCmd(t, "", "--root", root, "--name", "MyApp"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "AspAdvancedApp", "config.txt")); err != nil {
		t.Errorf("ignored directory was renamed: %v", err)
	}
}

func TestRootCmdEmptyInput(t *testing.T) {
	root := setupTemplate(t)
	if _, err := runCmd(t, "", "--root", root); err == nil {
		t.Error("Execute() error = nil, want error on closed input")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "", "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "tplrename version ") {
		t.Errorf("version output = %q", out)
	}

	out, err = runCmd(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) == "" || strings.Contains(out, "tplrename") {
		t.Errorf("short version output = %q", out)
	}
}

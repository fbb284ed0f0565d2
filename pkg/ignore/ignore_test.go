package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestParsePatternLine(t *testing.T) {
	tests := []struct {
		line string
		want string // empty means no pattern
	}{
		{"", ""},
		{"   ", ""},
		{"# comment", ""},
		{"  # indented comment", ""},
		{"secrets.txt", `^secrets\.txt$`},
		{"  bin  ", `^bin$`},
		{"build/*", `^build/.*$`},
		{"file?.log", `^file.?\.log$`},
		{"a+b(c)", `^a\+b\(c\)$`},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			re := parsePatternLine(tt.line)
			if tt.want == "" {
				if re != nil {
					t.Fatalf("parsePatternLine(%q) = %q, want nil", tt.line, re.String())
				}
				return
			}
			if re == nil {
				t.Fatalf("parsePatternLine(%q) = nil, want %q", tt.line, tt.want)
			}
			if re.String() != tt.want {
				t.Errorf("parsePatternLine(%q) = %q, want %q", tt.line, re.String(), tt.want)
			}
		})
	}
}

func TestMatchesPath(t *testing.T) {
	rs := New(zaptest.NewLogger(t))
	rs.CompileIgnoreLines(
		"# generated output",
		"build/*",
		"secrets.txt",
		"log?.txt",
		"*.tmp",
	)

	if rs.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", rs.Len())
	}

	tests := []struct {
		path string
		want bool
	}{
		{"build/output.txt", true},
		{"build/nested/deep.txt", true},
		{"build2/output.txt", false},
		{"build", false},
		{"secrets.txt", true},
		{"AspAdvancedApp_secrets.txt", false},
		{"config/secrets.txt", false},
		{"log1.txt", true},
		{"log.txt", true},
		{"log12.txt", false},
		{"a/b/c.tmp", true},
		{"c.tmpx", false},
		{"src/main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := rs.MatchesPath(tt.path); got != tt.want {
				t.Errorf("MatchesPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchesPathVCSDir(t *testing.T) {
	// The VCS directory is excluded even without any rules.
	for _, rs := range []*RuleSet{nil, New(nil)} {
		for _, path := range []string{
			".git",
			"sub/.git",
			filepath.Join("a", "b", ".git"),
			"/abs/project/.git",
		} {
			matched, pattern := rs.MatchesPathWithPattern(path)
			if !matched {
				t.Errorf("MatchesPath(%q) = false, want true", path)
			}
			if pattern != nil {
				t.Errorf("MatchesPathWithPattern(%q) pattern = %q, want nil", path, pattern.Line)
			}
		}

		for _, path := range []string{".gitignore", ".git/config", "my.git", "x.github"} {
			if rs.MatchesPath(path) {
				t.Errorf("MatchesPath(%q) = true, want false", path)
			}
		}
	}
}

func TestMatchesPathWithPatternReportsLine(t *testing.T) {
	rs := New(nil)
	rs.CompileIgnoreLines("", "*.log", "# c", "dist/*")

	matched, p := rs.MatchesPathWithPattern("dist/app.js")
	if !matched || p == nil {
		t.Fatalf("expected dist/app.js to match")
	}
	if p.Line != "dist/*" || p.LineNo != 4 {
		t.Errorf("pattern = %q line %d, want %q line 4", p.Line, p.LineNo, "dist/*")
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields empty set", func(t *testing.T) {
		rs, err := Load(t.TempDir(), "", zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if rs.Len() != 0 {
			t.Errorf("Len() = %d, want 0", rs.Len())
		}
	})

	t.Run("reads gitignore", func(t *testing.T) {
		root := t.TempDir()
		content := "# deps\r\nnode_modules\r\n\r\n  bin/*  \nobj/*\n"
		if err := os.WriteFile(filepath.Join(root, DefaultFileName), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		rs, err := Load(root, DefaultFileName, zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if rs.Len() != 3 {
			t.Fatalf("Len() = %d, want 3", rs.Len())
		}

		wantLines := []string{"node_modules", "bin/*", "obj/*"}
		wantNos := []int{2, 4, 5}
		for i, p := range rs.Patterns() {
			if p.Line != wantLines[i] || p.LineNo != wantNos[i] {
				t.Errorf("pattern %d = %q line %d, want %q line %d", i, p.Line, p.LineNo, wantLines[i], wantNos[i])
			}
		}
		if !rs.MatchesPath("bin/Debug") {
			t.Error("bin/Debug should be excluded")
		}
	})

	t.Run("custom file name", func(t *testing.T) {
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, ".renameignore"), []byte("docs/*\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		rs, err := Load(root, ".renameignore", nil)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !rs.MatchesPath("docs/readme.md") {
			t.Error("docs/readme.md should be excluded")
		}
	})

	t.Run("unreadable path is an error", func(t *testing.T) {
		root := t.TempDir()
		// A directory where the file should be cannot be read.
		if err := os.Mkdir(filepath.Join(root, DefaultFileName), 0o755); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(root, DefaultFileName, nil); err == nil {
			t.Error("Load() error = nil, want error")
		}
	})
}

package ignore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dirmap/dirmap/internal/ignore"
)

func TestMatcherSubstrings(t *testing.T) {
	testCases := []struct {
		name            string
		patterns        []string
		fullPath        string
		expectedIgnored bool
	}{
		{name: "directory name pattern", patterns: []string{"__pycache__"}, fullPath: "/project/__pycache__/module.pyc", expectedIgnored: true},
		{name: "pattern anywhere in path", patterns: []string{".git"}, fullPath: "/project/.git", expectedIgnored: true},
		{name: "no match", patterns: []string{"node_modules"}, fullPath: "/project/src/main.go", expectedIgnored: false},
		{name: "empty pattern matches nothing", patterns: []string{""}, fullPath: "/project/src/main.go", expectedIgnored: false},
		{name: "no patterns", patterns: nil, fullPath: "/project/src/main.go", expectedIgnored: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			matcher := ignore.NewMatcher(testCase.patterns)
			if actualIgnored := matcher.Ignored(testCase.fullPath); actualIgnored != testCase.expectedIgnored {
				t.Fatalf("Ignored(%q) = %v, want %v", testCase.fullPath, actualIgnored, testCase.expectedIgnored)
			}
		})
	}
}

func TestNilMatcherIgnoresNothing(t *testing.T) {
	var matcher *ignore.Matcher
	if matcher.Ignored("/any/path") {
		t.Fatal("nil matcher must not ignore paths")
	}
}

func TestMatcherWithGitignore(t *testing.T) {
	rootDirectory := t.TempDir()
	gitignoreContent := "*.log\nbuild/\n"
	if writeError := os.WriteFile(filepath.Join(rootDirectory, ".gitignore"), []byte(gitignoreContent), 0o600); writeError != nil {
		t.Fatalf("write .gitignore: %v", writeError)
	}

	matcher := ignore.NewMatcher(nil).WithGitignore(rootDirectory)

	if !matcher.Ignored(filepath.Join(rootDirectory, "app.log")) {
		t.Fatal("expected *.log rule to exclude app.log")
	}
	if !matcher.Ignored(filepath.Join(rootDirectory, "build", "artifact.bin")) {
		t.Fatal("expected build/ rule to exclude build contents")
	}
	if matcher.Ignored(filepath.Join(rootDirectory, "main.go")) {
		t.Fatal("main.go must not be excluded")
	}
}

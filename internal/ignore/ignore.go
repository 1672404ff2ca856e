// Package ignore decides which paths are excluded from rendering.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// gitIgnoreFileName is the ignore file collected when gitignore support is enabled.
const gitIgnoreFileName = ".gitignore"

// Matcher excludes paths by configured substrings and, optionally, by
// compiled .gitignore rules. A nil Matcher excludes nothing.
type Matcher struct {
	substringPatterns []string
	rootPath          string
	compiledIgnores   []*gitignore.GitIgnore
}

// NewMatcher builds a matcher over the provided substring patterns.
// A path is excluded when any pattern is a substring of its full path.
func NewMatcher(substringPatterns []string) *Matcher {
	return &Matcher{substringPatterns: substringPatterns}
}

// WithGitignore compiles every .gitignore file found under rootPath and adds
// its rules to the matcher. Unreadable or malformed files are skipped.
func (matcher *Matcher) WithGitignore(rootPath string) *Matcher {
	matcher.rootPath = rootPath
	_ = filepath.Walk(rootPath, func(currentPath string, information os.FileInfo, walkError error) error {
		if walkError != nil {
			return nil
		}
		if information.IsDir() || information.Name() != gitIgnoreFileName {
			return nil
		}
		compiledIgnore, compileError := gitignore.CompileIgnoreFile(currentPath)
		if compileError == nil {
			matcher.compiledIgnores = append(matcher.compiledIgnores, compiledIgnore)
		}
		return nil
	})
	return matcher
}

// Ignored reports whether the given full path is excluded from rendering.
func (matcher *Matcher) Ignored(fullPath string) bool {
	if matcher == nil {
		return false
	}
	for _, substringPattern := range matcher.substringPatterns {
		if substringPattern != "" && strings.Contains(fullPath, substringPattern) {
			return true
		}
	}
	if len(matcher.compiledIgnores) == 0 {
		return false
	}
	relativePath, relativeError := filepath.Rel(matcher.rootPath, fullPath)
	if relativeError != nil {
		relativePath = fullPath
	}
	for _, compiledIgnore := range matcher.compiledIgnores {
		if compiledIgnore.MatchesPath(relativePath) {
			return true
		}
	}
	return false
}

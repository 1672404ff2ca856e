package render

import (
	"path/filepath"
	"strings"
)

const (
	// dockerfileBaseName matches Dockerfiles regardless of extension.
	dockerfileBaseName = "dockerfile"
	dockerfileComment  = "Docker build instructions"
)

// extensionComments maps a lowercased file extension to its descriptive comment.
var extensionComments = map[string]string{
	".py":           "Python script",
	".css":          "CSS styles",
	".js":           "JavaScript code",
	".html":         "HTML template",
	".json":         "JSON data",
	".md":           "Markdown documentation",
	".yml":          "YAML configuration",
	".yaml":         "YAML configuration",
	".txt":          "Text file",
	".csv":          "CSV data",
	".sh":           "Shell script",
	".java":         "Java source code",
	".cpp":          "C++ source code",
	".cc":           "C++ source code",
	".c":            "C source code",
	".h":            "Header file",
	".hpp":          "Header file",
	".go":           "Go source code",
	".rs":           "Rust source code",
	".php":          "PHP script",
	".rb":           "Ruby script",
	".ts":           "TypeScript code",
	".jsx":          "React component",
	".tsx":          "React component",
	".sql":          "SQL query",
	".xml":          "XML data",
	".env":          "Environment variables",
	".gitignore":    "Git ignore rules",
	".dockerignore": "Docker ignore rules",
	".dockerfile":   dockerfileComment,
}

// CommentForFile returns the descriptive comment for a file name or the empty
// string when the extension is not recognized. Extension matching is
// case-insensitive, and a base name of "dockerfile" is special-cased.
func CommentForFile(baseName string) string {
	if strings.ToLower(baseName) == dockerfileBaseName {
		return dockerfileComment
	}
	lowercasedExtension := strings.ToLower(filepath.Ext(baseName))
	return extensionComments[lowercasedExtension]
}

// Package render produces the textual directory tree visualization.
package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dirmap/dirmap/internal/ignore"
	"github.com/dirmap/dirmap/internal/output"
)

const (
	lastConnector   = "└── "
	middleConnector = "├── "
	// lastIndent extends the indent below a last sibling, middleIndent below any other.
	lastIndent   = "    "
	middleIndent = "│   "

	annotationSeparator  = "  # "
	permissionDeniedName = "[Permission denied]"
	truncationLineFormat = "... %d more file(s) not shown  # Use --max-files option to change limit"

	// Unlimited disables a depth or file bound.
	Unlimited = -1

	errorAbsolutePathFormat  = "getting absolute path for %s: %w"
	errorPathMissingFormat   = "path '%s' does not exist"
	errorStatPathFormat      = "stat failed for '%s': %w"
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// Options configures a single render pass. MaxDepth is an inclusive bound on
// traversal depth with the root at depth zero; MaxFiles caps the number of
// files displayed per directory. A negative bound means unlimited.
type Options struct {
	MaxDepth int
	MaxFiles int
	Matcher  *ignore.Matcher
}

// Renderer streams a directory tree line by line to a sink. The tree is read
// fresh on every call; nothing is cached between renders.
type Renderer struct {
	sink    output.LineSink
	options Options
}

// NewRenderer constructs a renderer writing to the given sink.
func NewRenderer(sink output.LineSink, options Options) *Renderer {
	return &Renderer{sink: sink, options: options}
}

// Render writes the tree rooted at rootPath. The first line is the absolute
// root path without a connector; descendants follow depth-first with
// directories before files, each partition sorted lexicographically. The
// root not existing is reported as an error before any line is written.
func (renderer *Renderer) Render(rootPath string) error {
	absoluteRootPath, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, rootPath, absoluteError)
	}

	rootInformation, statError := os.Stat(absoluteRootPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return fmt.Errorf(errorPathMissingFormat, rootPath)
		}
		return fmt.Errorf(errorStatPathFormat, rootPath, statError)
	}

	if writeError := renderer.sink.WriteLine(absoluteRootPath); writeError != nil {
		return writeError
	}
	if !rootInformation.IsDir() {
		return nil
	}
	return renderer.renderChildren(absoluteRootPath, "", 1)
}

// renderChildren lists a directory and renders its entries at the given
// depth. childIndent is the accumulated prefix for lines at this level.
func (renderer *Renderer) renderChildren(directoryPath string, childIndent string, depth int) error {
	if renderer.options.MaxDepth >= 0 && depth > renderer.options.MaxDepth {
		return nil
	}

	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrPermission) {
			return renderer.sink.WriteLine(childIndent + lastConnector + permissionDeniedName)
		}
		return fmt.Errorf(errorReadDirectoryFormat, directoryPath, readError)
	}

	var directoryNames []string
	var fileNames []string
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		if renderer.options.Matcher.Ignored(childPath) {
			continue
		}
		if directoryEntry.IsDir() {
			directoryNames = append(directoryNames, directoryEntry.Name())
		} else {
			fileNames = append(fileNames, directoryEntry.Name())
		}
	}
	sort.Strings(directoryNames)
	sort.Strings(fileNames)

	hiddenFileCount := 0
	if renderer.options.MaxFiles >= 0 && len(fileNames) > renderer.options.MaxFiles {
		hiddenFileCount = len(fileNames) - renderer.options.MaxFiles
		fileNames = fileNames[:renderer.options.MaxFiles]
	}

	orderedNames := make([]string, 0, len(directoryNames)+len(fileNames))
	orderedNames = append(orderedNames, directoryNames...)
	orderedNames = append(orderedNames, fileNames...)

	for entryIndex, entryName := range orderedNames {
		// The truncation indicator, when present, is always the last line of
		// the block, so every real entry before it renders as not-last.
		isLastEntry := entryIndex == len(orderedNames)-1 && hiddenFileCount == 0
		isDirectory := entryIndex < len(directoryNames)
		childPath := filepath.Join(directoryPath, entryName)
		if renderError := renderer.renderNode(childPath, entryName, childIndent, isLastEntry, isDirectory, depth); renderError != nil {
			return renderError
		}
	}

	if hiddenFileCount > 0 {
		truncationLine := childIndent + lastConnector + fmt.Sprintf(truncationLineFormat, hiddenFileCount)
		return renderer.sink.WriteLine(truncationLine)
	}
	return nil
}

// renderNode emits one line for the entry and recurses into directories.
func (renderer *Renderer) renderNode(entryPath string, entryName string, indent string, isLastEntry bool, isDirectory bool, depth int) error {
	connector := middleConnector
	indentExtension := middleIndent
	if isLastEntry {
		connector = lastConnector
		indentExtension = lastIndent
	}

	line := indent + connector + entryName
	if !isDirectory {
		if comment := CommentForFile(entryName); comment != "" {
			line += annotationSeparator + comment
		}
	}
	if writeError := renderer.sink.WriteLine(line); writeError != nil {
		return writeError
	}

	if isDirectory {
		return renderer.renderChildren(entryPath, indent+indentExtension, depth+1)
	}
	return nil
}

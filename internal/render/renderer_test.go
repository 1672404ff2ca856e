package render_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dirmap/dirmap/internal/ignore"
	"github.com/dirmap/dirmap/internal/render"
)

// lineRecorder captures rendered lines in order.
type lineRecorder struct {
	lines []string
}

func (recorder *lineRecorder) WriteLine(line string) error {
	recorder.lines = append(recorder.lines, line)
	return nil
}

func (recorder *lineRecorder) Close() error {
	return nil
}

func unlimitedOptions() render.Options {
	return render.Options{MaxDepth: render.Unlimited, MaxFiles: render.Unlimited}
}

func createFile(testingInstance *testing.T, directoryPath string, fileName string) {
	testingInstance.Helper()
	if writeError := os.WriteFile(filepath.Join(directoryPath, fileName), []byte("content"), 0o600); writeError != nil {
		testingInstance.Fatalf("create file %s: %v", fileName, writeError)
	}
}

func createDirectory(testingInstance *testing.T, directoryPath string, directoryName string) string {
	testingInstance.Helper()
	createdPath := filepath.Join(directoryPath, directoryName)
	if mkdirError := os.Mkdir(createdPath, 0o755); mkdirError != nil {
		testingInstance.Fatalf("create directory %s: %v", directoryName, mkdirError)
	}
	return createdPath
}

func renderToLines(testingInstance *testing.T, rootPath string, options render.Options) []string {
	testingInstance.Helper()
	recorder := &lineRecorder{}
	renderer := render.NewRenderer(recorder, options)
	if renderError := renderer.Render(rootPath); renderError != nil {
		testingInstance.Fatalf("render failed: %v", renderError)
	}
	return recorder.lines
}

func TestRenderEndToEndExample(t *testing.T) {
	rootDirectory := t.TempDir()
	createFile(t, rootDirectory, "a.py")
	subDirectory := createDirectory(t, rootDirectory, "b")
	createFile(t, subDirectory, "c.js")

	renderedLines := renderToLines(t, rootDirectory, unlimitedOptions())

	expectedLines := []string{
		rootDirectory,
		"├── b",
		"│   └── c.js  # JavaScript code",
		"└── a.py  # Python script",
	}
	if !reflect.DeepEqual(renderedLines, expectedLines) {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", strings.Join(renderedLines, "\n"), strings.Join(expectedLines, "\n"))
	}
}

func TestRenderDirectoriesBeforeFiles(t *testing.T) {
	rootDirectory := t.TempDir()
	createDirectory(t, rootDirectory, "zebra")
	createDirectory(t, rootDirectory, "alpha")
	createFile(t, rootDirectory, "beta.data")
	createFile(t, rootDirectory, "yankee.data")

	renderedLines := renderToLines(t, rootDirectory, unlimitedOptions())

	expectedLines := []string{
		rootDirectory,
		"├── alpha",
		"├── zebra",
		"├── beta.data",
		"└── yankee.data",
	}
	if !reflect.DeepEqual(renderedLines, expectedLines) {
		t.Fatalf("unexpected output:\n%s", strings.Join(renderedLines, "\n"))
	}
}

func TestRenderIndentUnderLastAndMiddleSiblings(t *testing.T) {
	rootDirectory := t.TempDir()
	firstDirectory := createDirectory(t, rootDirectory, "first")
	createFile(t, firstDirectory, "inner.data")
	secondDirectory := createDirectory(t, rootDirectory, "second")
	createFile(t, secondDirectory, "inner.data")

	renderedLines := renderToLines(t, rootDirectory, unlimitedOptions())

	expectedLines := []string{
		rootDirectory,
		"├── first",
		"│   └── inner.data",
		"└── second",
		"    └── inner.data",
	}
	if !reflect.DeepEqual(renderedLines, expectedLines) {
		t.Fatalf("unexpected output:\n%s", strings.Join(renderedLines, "\n"))
	}
}

func TestRenderTruncation(t *testing.T) {
	rootDirectory := t.TempDir()
	fileNames := []string{"d00.data", "d01.data", "d02.data", "d03.data", "d04.data", "d05.data", "d06.data", "d07.data", "d08.data", "d09.data"}
	for _, fileName := range fileNames {
		createFile(t, rootDirectory, fileName)
	}

	options := unlimitedOptions()
	options.MaxFiles = 3
	renderedLines := renderToLines(t, rootDirectory, options)

	expectedLines := []string{
		rootDirectory,
		"├── d00.data",
		"├── d01.data",
		"├── d02.data",
		"└── ... 7 more file(s) not shown  # Use --max-files option to change limit",
	}
	if !reflect.DeepEqual(renderedLines, expectedLines) {
		t.Fatalf("unexpected output:\n%s", strings.Join(renderedLines, "\n"))
	}
}

func TestRenderTruncationKeepsIndicatorLast(t *testing.T) {
	rootDirectory := t.TempDir()
	createDirectory(t, rootDirectory, "sub")
	createFile(t, rootDirectory, "x1.data")
	createFile(t, rootDirectory, "x2.data")
	createFile(t, rootDirectory, "x3.data")

	options := unlimitedOptions()
	options.MaxFiles = 1
	renderedLines := renderToLines(t, rootDirectory, options)

	expectedLines := []string{
		rootDirectory,
		"├── sub",
		"├── x1.data",
		"└── ... 2 more file(s) not shown  # Use --max-files option to change limit",
	}
	if !reflect.DeepEqual(renderedLines, expectedLines) {
		t.Fatalf("unexpected output:\n%s", strings.Join(renderedLines, "\n"))
	}
}

func TestRenderMaxDepth(t *testing.T) {
	rootDirectory := t.TempDir()
	levelOne := createDirectory(t, rootDirectory, "level1")
	levelTwo := createDirectory(t, levelOne, "level2")
	createFile(t, levelTwo, "deep.data")

	testCases := []struct {
		name          string
		maxDepth      int
		expectedLines []string
	}{
		{
			name:          "depth zero renders only the root",
			maxDepth:      0,
			expectedLines: []string{rootDirectory},
		},
		{
			name:     "depth one renders direct children only",
			maxDepth: 1,
			expectedLines: []string{
				rootDirectory,
				"└── level1",
			},
		},
		{
			name:     "depth two renders the node at the bound",
			maxDepth: 2,
			expectedLines: []string{
				rootDirectory,
				"└── level1",
				"    └── level2",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			options := unlimitedOptions()
			options.MaxDepth = testCase.maxDepth
			renderedLines := renderToLines(t, rootDirectory, options)
			if !reflect.DeepEqual(renderedLines, testCase.expectedLines) {
				t.Fatalf("unexpected output:\n%s", strings.Join(renderedLines, "\n"))
			}
		})
	}
}

func TestRenderIgnorePatterns(t *testing.T) {
	rootDirectory := t.TempDir()
	cacheDirectory := createDirectory(t, rootDirectory, "__pycache__")
	createFile(t, cacheDirectory, "module.data")
	createFile(t, rootDirectory, "keep.data")
	createFile(t, rootDirectory, "skip.data")

	options := unlimitedOptions()
	options.Matcher = ignore.NewMatcher([]string{"__pycache__", "skip.data"})
	renderedLines := renderToLines(t, rootDirectory, options)

	expectedLines := []string{
		rootDirectory,
		"└── keep.data",
	}
	if !reflect.DeepEqual(renderedLines, expectedLines) {
		t.Fatalf("unexpected output:\n%s", strings.Join(renderedLines, "\n"))
	}
}

func TestRenderIdempotence(t *testing.T) {
	rootDirectory := t.TempDir()
	subDirectory := createDirectory(t, rootDirectory, "sub")
	createFile(t, subDirectory, "inner.go")
	createFile(t, rootDirectory, "main.go")
	createFile(t, rootDirectory, "README.md")

	firstRender := renderToLines(t, rootDirectory, unlimitedOptions())
	secondRender := renderToLines(t, rootDirectory, unlimitedOptions())

	if !reflect.DeepEqual(firstRender, secondRender) {
		t.Fatalf("renders differ:\n%s\nvs:\n%s", strings.Join(firstRender, "\n"), strings.Join(secondRender, "\n"))
	}
}

func TestRenderMissingRoot(t *testing.T) {
	recorder := &lineRecorder{}
	renderer := render.NewRenderer(recorder, unlimitedOptions())

	renderError := renderer.Render(filepath.Join(t.TempDir(), "does-not-exist"))
	if renderError == nil {
		t.Fatal("expected an error for a missing root")
	}
	if !strings.Contains(renderError.Error(), "does not exist") {
		t.Fatalf("unexpected error: %v", renderError)
	}
	if len(recorder.lines) != 0 {
		t.Fatalf("expected no output before the failure, got %d lines", len(recorder.lines))
	}
}

func TestRenderPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	rootDirectory := t.TempDir()
	lockedDirectory := createDirectory(t, rootDirectory, "locked")
	createFile(t, lockedDirectory, "hidden.data")
	openDirectory := createDirectory(t, rootDirectory, "open")
	createFile(t, openDirectory, "visible.data")

	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		t.Fatalf("chmod: %v", chmodError)
	}
	t.Cleanup(func() {
		_ = os.Chmod(lockedDirectory, 0o755)
	})

	renderedLines := renderToLines(t, rootDirectory, unlimitedOptions())

	expectedLines := []string{
		rootDirectory,
		"├── locked",
		"│   └── [Permission denied]",
		"└── open",
		"    └── visible.data",
	}
	if !reflect.DeepEqual(renderedLines, expectedLines) {
		t.Fatalf("unexpected output:\n%s", strings.Join(renderedLines, "\n"))
	}
}

// Package output provides line sinks that receive the rendered tree.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/flock"

	"github.com/dirmap/dirmap/internal/services/clipboard"
)

const (
	lineTerminator = "\n"
	// lockFileSuffix names the advisory lock placed next to an output file.
	lockFileSuffix = ".lock"

	errorLockFormat       = "locking output file %s: %w"
	errorLockHeldFormat   = "output file %s is locked by another process"
	errorCreateFileFormat = "creating output file %s: %w"
)

// LineSink accepts rendered lines one at a time. Close must be called on
// every exit path; it releases any held resources.
type LineSink interface {
	WriteLine(line string) error
	Close() error
}

type writerSink struct {
	bufferedWriter *bufio.Writer
}

// NewWriterSink wraps an io.Writer in a buffered line sink.
func NewWriterSink(writer io.Writer) LineSink {
	return &writerSink{bufferedWriter: bufio.NewWriter(writer)}
}

func (sink *writerSink) WriteLine(line string) error {
	_, writeError := sink.bufferedWriter.WriteString(line + lineTerminator)
	return writeError
}

func (sink *writerSink) Close() error {
	return sink.bufferedWriter.Flush()
}

type fileSink struct {
	targetPath     string
	fileHandle     *os.File
	bufferedWriter *bufio.Writer
	fileLock       *flock.Flock
	confirm        func(writtenPath string)
}

// NewFileSink creates targetPath for writing, guarded by an advisory lock for
// the duration of the write. The confirm callback, when non-nil, is invoked
// with the target path after the file has been flushed and closed.
func NewFileSink(targetPath string, confirm func(writtenPath string)) (LineSink, error) {
	fileLock := flock.New(targetPath + lockFileSuffix)
	lockAcquired, lockError := fileLock.TryLock()
	if lockError != nil {
		return nil, fmt.Errorf(errorLockFormat, targetPath, lockError)
	}
	if !lockAcquired {
		return nil, fmt.Errorf(errorLockHeldFormat, targetPath)
	}

	fileHandle, createError := os.Create(targetPath)
	if createError != nil {
		_ = fileLock.Unlock()
		_ = os.Remove(fileLock.Path())
		return nil, fmt.Errorf(errorCreateFileFormat, targetPath, createError)
	}

	return &fileSink{
		targetPath:     targetPath,
		fileHandle:     fileHandle,
		bufferedWriter: bufio.NewWriter(fileHandle),
		fileLock:       fileLock,
		confirm:        confirm,
	}, nil
}

func (sink *fileSink) WriteLine(line string) error {
	_, writeError := sink.bufferedWriter.WriteString(line + lineTerminator)
	return writeError
}

// Close flushes, closes, and unlocks the output file. The handle is released
// even when flushing fails; confirm runs only on a fully successful close.
func (sink *fileSink) Close() error {
	flushError := sink.bufferedWriter.Flush()
	closeError := sink.fileHandle.Close()
	unlockError := sink.fileLock.Unlock()
	_ = os.Remove(sink.fileLock.Path())
	if flushError != nil {
		return flushError
	}
	if closeError != nil {
		return closeError
	}
	if unlockError != nil {
		return unlockError
	}
	if sink.confirm != nil {
		sink.confirm(sink.targetPath)
	}
	return nil
}

type clipboardSink struct {
	primary  LineSink
	copier   clipboard.Copier
	document strings.Builder
}

// NewClipboardSink tees every line into an in-memory document that is copied
// to the clipboard once the primary sink closes successfully.
func NewClipboardSink(primary LineSink, copier clipboard.Copier) LineSink {
	return &clipboardSink{primary: primary, copier: copier}
}

func (sink *clipboardSink) WriteLine(line string) error {
	sink.document.WriteString(line + lineTerminator)
	return sink.primary.WriteLine(line)
}

func (sink *clipboardSink) Close() error {
	if closeError := sink.primary.Close(); closeError != nil {
		return closeError
	}
	return sink.copier.Copy(sink.document.String())
}

package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileManager performs page-aligned reads and writes against one regular
// file on disk, creating it (and any missing parent directories) on open.
type FileManager struct {
	path string
	f    *os.File
}

// NewFileManager opens (creating if absent) the database file at path.
func NewFileManager(path string) (*FileManager, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, wrapStorageError(err, "create directory for %q", path)
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, wrapStorageError(err, "open database file %q", path)
	}
	return &FileManager{path: path, f: f}, nil
}

// ReadPage seeks to pageNum*pageSize and reads up to pageSize bytes,
// zero-padding a short tail (including a file that doesn't yet extend
// that far).
func (fm *FileManager) ReadPage(pageNum, pageSize int) ([]byte, error) {
	buf := make([]byte, pageSize)
	n, err := fm.f.ReadAt(buf, int64(pageNum)*int64(pageSize))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, wrapStorageError(err, "read page %d", pageNum)
	}
	for i := n; i < pageSize; i++ {
		buf[i] = 0
	}
	return buf, nil
}

// WritePage writes data (exactly pageSize bytes, the page's full extent)
// at pageNum*len(data).
func (fm *FileManager) WritePage(pageNum int, data []byte) error {
	if _, err := fm.f.WriteAt(data, int64(pageNum)*int64(len(data))); err != nil {
		return wrapStorageError(err, "write page %d", pageNum)
	}
	return nil
}

// Flush forces the file's contents to stable storage.
func (fm *FileManager) Flush() error {
	if err := fm.f.Sync(); err != nil {
		return wrapStorageError(err, "flush %q", fm.path)
	}
	return nil
}

// Close releases the underlying file handle.
func (fm *FileManager) Close() error {
	return fm.f.Close()
}

package backend

import (
	"errors"
	"io/fs"
	"os"
)

// tempFile is a generated terminal configuration on disk.
type tempFile struct {
	path string
}

// newTempFile writes data to a new file named glrnvim-*<ext> in dir.
func newTempFile(dir, ext string, data []byte) (*tempFile, error) {
	f, err := os.CreateTemp(dir, "glrnvim-*"+ext)
	if err != nil {
		return nil, &TempFileError{Op: "create", Err: err}
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return nil, &TempFileError{Path: path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, &TempFileError{Path: path, Op: "close", Err: err}
	}
	return &tempFile{path: path}, nil
}

// Path returns the file path.
func (t *tempFile) Path() string {
	return t.path
}

// Remove deletes the file. A file that is already gone is not an error.
func (t *tempFile) Remove() error {
	if t == nil {
		return nil
	}
	if err := os.Remove(t.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &TempFileError{Path: t.path, Op: "remove", Err: err}
	}
	return nil
}

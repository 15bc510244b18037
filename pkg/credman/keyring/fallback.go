package keyring

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	cookieFileName = "cookie"
	cookieFileMode = 0600
)

// FileStore keeps the cookie in a 0600 file under dir. It is used when the
// system keyring is unavailable.
type FileStore struct {
	fs  afero.Fs
	dir string
}

func NewFileStore(fsys afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fsys, dir: dir}
}

func (f *FileStore) Name() string { return "file" }

// Path returns the location of the cookie file.
func (f *FileStore) Path() string {
	return filepath.Join(f.dir, cookieFileName)
}

func (f *FileStore) Get() (string, error) {
	data, err := afero.ReadFile(f.fs, f.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Set writes value atomically: a temp file in dir is written, chmodded and
// renamed over the cookie file.
func (f *FileStore) Set(value string) error {
	if err := f.fs.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := afero.TempFile(f.fs, f.dir, ".cookie.tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		f.fs.Remove(tmpPath)
		return fmt.Errorf("write cookie: %w", err)
	}
	if err := tmp.Close(); err != nil {
		f.fs.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := f.fs.Chmod(tmpPath, cookieFileMode); err != nil {
		f.fs.Remove(tmpPath)
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := f.fs.Rename(tmpPath, f.Path()); err != nil {
		f.fs.Remove(tmpPath)
		return fmt.Errorf("rename cookie file: %w", err)
	}
	return nil
}

func (f *FileStore) Delete() error {
	err := f.fs.Remove(f.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

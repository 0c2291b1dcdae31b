package fs

import (
	"os"
	"path/filepath"

	"github.com/lance-io/lance-bridge/io/fs/file"
)

type LocalFS struct{}

func (l *LocalFS) OpenFile(path string) (file.File, error) {
	open, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}
	return file.NewLocalFile(open), nil
}

func (l *LocalFS) Rename(src string, dst string) error {
	return os.Rename(src, dst)
}

func (l *LocalFS) DeleteFile(path string) error {
	return os.Remove(path)
}

func (l *LocalFS) CreateDir(path string) error {
	return os.MkdirAll(path, 0755)
}

func (l *LocalFS) List(path string) ([]FileEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	ret := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, FileEntry{Path: filepath.Join(path, entry.Name())})
	}
	return ret, nil
}

func (l *LocalFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (l *LocalFS) Exist(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func NewLocalFs() *LocalFS {
	return &LocalFS{}
}

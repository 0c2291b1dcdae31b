package fs

import (
	"os"
	"strings"

	"github.com/lance-io/lance-bridge/io/fs/file"
)

type MemoryFs struct {
	files map[string]*file.MemoryFile
}

func (m *MemoryFs) OpenFile(path string) (file.File, error) {
	if f, ok := m.files[path]; ok {
		return f, nil
	}
	f := file.NewMemoryFile(nil)
	m.files[path] = f
	return f, nil
}

func (m *MemoryFs) Rename(src string, dst string) error {
	if _, ok := m.files[src]; !ok {
		return nil
	}
	m.files[dst] = m.files[src]
	delete(m.files, src)
	return nil
}

func (m *MemoryFs) DeleteFile(path string) error {
	delete(m.files, path)
	return nil
}

func (m *MemoryFs) CreateDir(path string) error {
	return nil
}

func (m *MemoryFs) List(path string) ([]FileEntry, error) {
	ret := make([]FileEntry, 0)
	for p := range m.files {
		if strings.HasPrefix(p, path) {
			ret = append(ret, FileEntry{Path: p})
		}
	}
	return ret, nil
}

func (m *MemoryFs) ReadFile(path string) ([]byte, error) {
	f, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	b := f.Bytes()
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *MemoryFs) Exist(path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func NewMemoryFs() *MemoryFs {
	return &MemoryFs{
		files: make(map[string]*file.MemoryFile),
	}
}

// Package mmap maps input files read-only into memory.
package mmap

import (
	"fmt"
	"os"
)

// File is a read-only view of a whole file.
type File struct {
	Name string
	data []byte
	size int64
	// release is nil when data is an ordinary heap copy
	release func([]byte) error
}

// Open maps the named file. Empty files yield an empty view without a
// mapping.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", name)
	}

	m := &File{Name: name, size: info.Size()}
	if m.size == 0 {
		return m, nil
	}
	if int64(int(m.size)) != m.size {
		return nil, fmt.Errorf("%s is too large to map (%d bytes)", name, m.size)
	}

	if err := m.mmap(f); err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", name, err)
	}

	return m, nil
}

// Bytes returns the file contents. The slice must not be written to and is
// invalid after Close.
func (m *File) Bytes() []byte { return m.data }

// Size returns the file size reported by the file system when it was opened.
func (m *File) Size() int64 { return m.size }

// Close releases the mapping.
func (m *File) Close() error {
	if m.release == nil || m.data == nil {
		m.data = nil
		return nil
	}
	data := m.data
	m.data = nil
	return m.release(data)
}

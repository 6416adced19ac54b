//go:build !unix

package mmap

import (
	"io"
	"os"
)

func (m *File) mmap(f *os.File) error {
	data := make([]byte, m.size)
	if _, err := io.ReadFull(f, data); err != nil {
		return err
	}
	m.data = data
	return nil
}

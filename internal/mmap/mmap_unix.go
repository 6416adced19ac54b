//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func (m *File) mmap(f *os.File) error {
	data, err := unix.Mmap(int(f.Fd()), 0, int(m.size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	m.data = data
	m.release = unix.Munmap
	return nil
}

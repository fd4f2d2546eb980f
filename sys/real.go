package sys

import (
	"io/fs"
	"os"
)

var _ FS = (*OSFS)(nil)

// OSFS is the real filesystem implementation backed by the os package.
type OSFS struct{}

func (*OSFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (*OSFS) Open(name string) (FileHandle, error) {
	return os.Open(name)
}

func (*OSFS) Create(name string) (FileHandle, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
}

func (*OSFS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (*OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

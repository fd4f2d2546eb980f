package sys

import (
	"io"
	"io/fs"
	"os"
	"sync/atomic"
)

// FileHandle is the surface of an open file used by the translog tooling.
type FileHandle interface {
	io.ReadWriteCloser

	Stat() (os.FileInfo, error)
	Sync() error
	Name() string
}

// FS abstracts the filesystem operations the locator and decoder perform.
// Directory listings and file reads go through it so the scan logic can be
// exercised against synthetic listings in tests.
type FS interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	Open(name string) (FileHandle, error)
	Create(name string) (FileHandle, error)
	Stat(name string) (os.FileInfo, error)
	Rename(oldpath, newpath string) error
}

// fsWrapper is a stable concrete type used to store the FS interface inside
// an atomic.Value. atomic.Value requires that all stored values have the same
// concrete type; wrapping the interface ensures implementations can be
// swapped safely.
type fsWrapper struct {
	fs FS
}

var defaultFS atomic.Value // stores fsWrapper

func init() {
	defaultFS.Store(fsWrapper{fs: &OSFS{}})
}

// Default returns the process-wide FS implementation.
func Default() FS {
	return defaultFS.Load().(fsWrapper).fs
}

// SetDefault replaces the process-wide FS implementation.
func SetDefault(f FS) {
	defaultFS.Store(fsWrapper{fs: f})
}

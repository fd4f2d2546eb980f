package sys

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

var _ FS = (*MemFS)(nil)

// MemFS is an in-memory FS implementation for tests. It supports synthetic
// directory listings and per-path error injection, which keeps the locator
// and decoder testable without touching the real filesystem.
type MemFS struct {
	mu    sync.Mutex
	dirs  map[string]bool
	files map[string][]byte
	errs  map[string]error
}

func NewMemFS() *MemFS {
	return &MemFS{
		dirs:  make(map[string]bool),
		files: make(map[string][]byte),
		errs:  make(map[string]error),
	}
}

// MkdirAll registers a directory and all of its parents.
func (m *MemFS) MkdirAll(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAllLocked(filepath.Clean(path))
}

func (m *MemFS) mkdirAllLocked(path string) {
	for {
		m.dirs[path] = true
		parent := filepath.Dir(path)
		if parent == path {
			return
		}
		path = parent
	}
}

// WriteFile registers a file with the given content, creating parent directories.
func (m *MemFS) WriteFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.mkdirAllLocked(filepath.Dir(path))
	m.files[path] = append([]byte(nil), data...)
}

// FailWith injects an error returned by any operation touching the given path.
func (m *MemFS) FailWith(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[filepath.Clean(path)] = err
}

func (m *MemFS) injectedLocked(path string) error {
	if err, ok := m.errs[path]; ok {
		return err
	}
	return nil
}

func (m *MemFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = filepath.Clean(name)
	if err := m.injectedLocked(name); err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	if !m.dirs[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	var entries []fs.DirEntry
	for d := range m.dirs {
		if d != name && filepath.Dir(d) == name {
			entries = append(entries, &memDirEntry{name: filepath.Base(d), dir: true})
		}
	}
	for f, data := range m.files {
		if filepath.Dir(f) == name {
			entries = append(entries, &memDirEntry{name: filepath.Base(f), size: int64(len(data))})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MemFS) Open(name string) (FileHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = filepath.Clean(name)
	if err := m.injectedLocked(name); err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &memHandle{name: name, reader: bytes.NewReader(data), size: int64(len(data))}, nil
}

func (m *MemFS) Create(name string) (FileHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = filepath.Clean(name)
	if err := m.injectedLocked(name); err != nil {
		return nil, &fs.PathError{Op: "create", Path: name, Err: err}
	}
	m.mkdirAllLocked(filepath.Dir(name))
	return &memHandle{name: name, fs: m}, nil
}

func (m *MemFS) Stat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = filepath.Clean(name)
	if err := m.injectedLocked(name); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	if data, ok := m.files[name]; ok {
		return &memFileInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	if m.dirs[name] {
		return &memFileInfo{name: filepath.Base(name), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MemFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	oldpath, newpath = filepath.Clean(oldpath), filepath.Clean(newpath)
	data, ok := m.files[oldpath]
	if !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	delete(m.files, oldpath)
	m.mkdirAllLocked(filepath.Dir(newpath))
	m.files[newpath] = data
	return nil
}

// memHandle implements FileHandle over an in-memory buffer. Reads come from
// the snapshot taken at Open; writes accumulate and are published on Sync/Close.
type memHandle struct {
	name   string
	reader *bytes.Reader
	buf    bytes.Buffer
	size   int64
	fs     *MemFS
	closed bool
}

func (h *memHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, os.ErrClosed
	}
	if h.reader == nil {
		return 0, &fs.PathError{Op: "read", Path: h.name, Err: os.ErrInvalid}
	}
	return h.reader.Read(p)
}

func (h *memHandle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, os.ErrClosed
	}
	return h.buf.Write(p)
}

func (h *memHandle) Stat() (os.FileInfo, error) {
	return &memFileInfo{name: filepath.Base(h.name), size: h.size}, nil
}

func (h *memHandle) Sync() error {
	h.publish()
	return nil
}

func (h *memHandle) Name() string { return h.name }

func (h *memHandle) Close() error {
	if h.closed {
		return os.ErrClosed
	}
	h.publish()
	h.closed = true
	return nil
}

func (h *memHandle) publish() {
	if h.fs == nil || h.buf.Len() == 0 {
		return
	}
	h.fs.mu.Lock()
	h.fs.files[h.name] = append([]byte(nil), h.buf.Bytes()...)
	h.fs.mu.Unlock()
}

type memDirEntry struct {
	name string
	dir  bool
	size int64
}

func (e *memDirEntry) Name() string { return e.name }
func (e *memDirEntry) IsDir() bool  { return e.dir }
func (e *memDirEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}
func (e *memDirEntry) Info() (fs.FileInfo, error) {
	return &memFileInfo{name: e.name, dir: e.dir, size: e.size}, nil
}

type memFileInfo struct {
	name string
	dir  bool
	size int64
}

func (i *memFileInfo) Name() string       { return i.name }
func (i *memFileInfo) Size() int64        { return i.size }
func (i *memFileInfo) ModTime() time.Time { return time.Time{} }
func (i *memFileInfo) IsDir() bool        { return i.dir }
func (i *memFileInfo) Sys() any           { return nil }
func (i *memFileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0755
	}
	return 0644
}

// Package checkpoint reads the fixed-layout checkpoint record paired with a
// translog generation file. The layout is defined by the storage subsystem:
// a magic/version header followed by the checkpoint fields, little-endian,
// with a fixed total size. Decoding is total for well-formed input and the
// record is immutable once decoded.
package checkpoint

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/INLOpen/translogctl/core"
	"github.com/INLOpen/translogctl/sys"
)

// fileHeader precedes the checkpoint fields on disk.
type fileHeader struct {
	Magic   uint32
	Version uint8
}

// body holds the checkpoint fields in their on-disk order.
type body struct {
	Offset                int64
	NumOps                int32
	Generation            int64
	MinSeqNo              int64
	MaxSeqNo              int64
	GlobalCheckpoint      int64
	MinTranslogGeneration int64
	TrimmedAboveSeqNo     int64
}

// FileSize is the exact size of a well-formed checkpoint file.
var FileSize = int64(binary.Size(fileHeader{}) + binary.Size(body{}))

// Record is the decoded state of a translog generation at a point in time.
type Record struct {
	Offset                int64
	NumOps                int32
	Generation            int64
	MinSeqNo              int64
	MaxSeqNo              int64
	GlobalCheckpoint      int64
	MinTranslogGeneration int64
	TrimmedAboveSeqNo     int64
}

// Field is one named checkpoint value.
type Field struct {
	Name  string
	Value int64
}

// Fields returns every checkpoint field, named, in the order the on-disk
// layout defines. No field is dropped; renderers must preserve this order.
func (r Record) Fields() []Field {
	return []Field{
		{Name: "offset", Value: r.Offset},
		{Name: "numOps", Value: int64(r.NumOps)},
		{Name: "generation", Value: r.Generation},
		{Name: "minSeqNo", Value: r.MinSeqNo},
		{Name: "maxSeqNo", Value: r.MaxSeqNo},
		{Name: "globalCheckpoint", Value: r.GlobalCheckpoint},
		{Name: "minTranslogGeneration", Value: r.MinTranslogGeneration},
		{Name: "trimmedAboveSeqNo", Value: r.TrimmedAboveSeqNo},
	}
}

// Read decodes the checkpoint file at path.
//
// A missing file is reported as a core.NotFoundError: a generation whose
// checkpoint has not been written yet is absence, not corruption. A file of
// the wrong size, with a bad magic number, an unsupported version, or
// truncated content is a core.DecodeError; no partial record is returned.
func Read(fsys sys.FS, path string) (Record, error) {
	if fsys == nil {
		fsys = sys.Default()
	}

	file, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, &core.NotFoundError{Reason: "checkpoint file does not exist", Path: path}
		}
		return Record{}, fmt.Errorf("failed to open checkpoint file %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return Record{}, fmt.Errorf("failed to stat checkpoint file %s: %w", path, err)
	}
	if stat.Size() != FileSize {
		return Record{}, &core.DecodeError{
			Path:    path,
			Message: fmt.Sprintf("unexpected file size: got %d, want %d", stat.Size(), FileSize),
		}
	}

	var header fileHeader
	if err := binary.Read(file, binary.LittleEndian, &header); err != nil {
		return Record{}, &core.DecodeError{Path: path, Message: "failed to read header", Err: err}
	}
	if header.Magic != core.CheckpointMagicNumber {
		return Record{}, &core.DecodeError{
			Path:    path,
			Message: fmt.Sprintf("invalid magic number: got %x, want %x", header.Magic, core.CheckpointMagicNumber),
		}
	}
	if header.Version != core.CheckpointFormatVersion {
		return Record{}, &core.DecodeError{
			Path:    path,
			Message: fmt.Sprintf("unsupported format version: got %d, want %d", header.Version, core.CheckpointFormatVersion),
		}
	}

	var b body
	if err := binary.Read(file, binary.LittleEndian, &b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Record{}, &core.DecodeError{Path: path, Message: "checkpoint file is truncated", Err: err}
		}
		return Record{}, &core.DecodeError{Path: path, Message: "failed to read checkpoint fields", Err: err}
	}

	return Record(b), nil
}

// Write atomically writes a checkpoint record to path using the
// write-and-rename strategy, mirroring how the storage subsystem produces
// these files. The inspection tool itself never calls this; it exists for
// fixture generation and tests.
func Write(fsys sys.FS, path string, rec Record) error {
	if fsys == nil {
		fsys = sys.Default()
	}

	tempPath := path + ".tmp"
	file, err := fsys.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint file: %w", err)
	}

	header := fileHeader{Magic: core.CheckpointMagicNumber, Version: core.CheckpointFormatVersion}
	if err := binary.Write(file, binary.LittleEndian, &header); err != nil {
		file.Close()
		return fmt.Errorf("failed to write checkpoint header: %w", err)
	}
	if err := binary.Write(file, binary.LittleEndian, body(rec)); err != nil {
		file.Close()
		return fmt.Errorf("failed to write checkpoint fields: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync temp checkpoint file: %w", err)
	}
	// Close before renaming; required on Windows.
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close temp checkpoint file before rename: %w", err)
	}

	if err := fsys.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp checkpoint file to final name: %w", err)
	}
	return nil
}

package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// This file centralizes constants related to file formats, magic numbers,
// and naming conventions used across the remote translog layout.

// --- Magic Numbers ---
const (
	// CheckpointMagicNumber identifies a translog checkpoint file.
	CheckpointMagicNumber uint32 = 0x544C4B43 // "CKLT"
)

// --- Protocol & Format Versions ---
const (
	// CheckpointFormatVersion is the current version of the checkpoint layout.
	CheckpointFormatVersion uint8 = 1
)

// --- File Names & Prefixes ---
const (
	// RemoteStoreDirName is the fixed repository subdirectory holding remote shard data.
	RemoteStoreDirName = "rem"
	// TranslogDirName and TranslogDataDirName form the fixed suffix of the
	// translog data area below a shard directory.
	TranslogDirName     = "translog"
	TranslogDataDirName = "data"
	// TranslogFilePrefix is the prefix of translog generation files.
	TranslogFilePrefix = "translog-"
	// TranslogFileSuffix is the suffix of translog generation files.
	TranslogFileSuffix = ".tlog"
	// CheckpointFileSuffix is the suffix of the checkpoint paired with a generation file.
	CheckpointFileSuffix = ".ckp"
)

// translogFilePattern matches translog generation file names, capturing the digit group.
var translogFilePattern = regexp.MustCompile(`^translog-(\d+)\.tlog$`)

// FormatTranslogFileName creates a generation file name from its generation number.
func FormatTranslogFileName(generation uint64) string {
	return fmt.Sprintf("%s%d%s", TranslogFilePrefix, generation, TranslogFileSuffix)
}

// ParseTranslogFileName extracts the generation number from a translog file name.
// A name that does not match the translog-<digits>.tlog pattern is rejected.
// A digit group that matches but does not parse (overflow) yields generation 0;
// the file remains a valid candidate. This mirrors the lenient behavior of the
// storage subsystem and must not be tightened.
func ParseTranslogFileName(name string) (uint64, bool) {
	m := translogFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	gen, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, true
	}
	return gen, true
}

// ParsePrimaryTermDirName extracts the primary term from a directory name.
// Only names that are entirely base-10 digits qualify.
func ParsePrimaryTermDirName(name string) (uint64, error) {
	return strconv.ParseUint(name, 10, 64)
}

// CheckpointFileNameFor derives the checkpoint file path paired with a
// translog generation file path by swapping the suffix.
func CheckpointFileNameFor(translogPath string) string {
	return strings.TrimSuffix(translogPath, TranslogFileSuffix) + CheckpointFileSuffix
}

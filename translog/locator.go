// Package translog locates the most recent translog generation of a shard
// inside its remote-store directory tree. The scan is read-only: a snapshot
// listing is taken at each level, filtered, and ordered by a derived numeric
// key. A concurrent writer may add a newer generation after the scan; the
// result is a best-effort snapshot for offline inspection, not a live
// consistency guarantee.
package translog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/INLOpen/translogctl/core"
	"github.com/INLOpen/translogctl/sys"
)

// LatestGenerationInfo describes the newest translog generation found for a
// shard: the selected primary-term directory, the generation file inside it,
// and the derived checkpoint path. The checkpoint path is reported
// unconditionally; whether the file exists is the caller's concern.
type LatestGenerationInfo struct {
	PrimaryTermDir string
	PrimaryTerm    uint64
	TranslogFile   string
	Generation     uint64
	CheckpointFile string
}

// Options holds configuration for the Locator.
type Options struct {
	FS     sys.FS
	Logger *slog.Logger
}

// Locator scans a translog data directory for the latest primary term and
// generation. It is stateless between calls.
type Locator struct {
	fs     sys.FS
	logger *slog.Logger
}

func NewLocator(opts Options) *Locator {
	if opts.FS == nil {
		opts.FS = sys.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default().With("component", "TranslogLocator")
	} else {
		opts.Logger = opts.Logger.With("component", "TranslogLocator")
	}
	return &Locator{fs: opts.FS, logger: opts.Logger}
}

// FindLatestGeneration resolves the newest generation below translogDataDir.
//
// It first selects the primary-term subdirectory with the largest numeric
// name, then the translog-<n>.tlog file with the largest generation inside
// it. Ordering is numeric, never lexicographic. Entries whose names do not
// follow the naming convention are excluded from candidacy, never errors:
// unrelated files legitimately coexist in these directories.
//
// Expected absences (missing directory, no term directories, no translog
// files) are returned as a core.NotFoundError. I/O failures are logged and
// returned wrapped; neither terminates the process.
func (l *Locator) FindLatestGeneration(translogDataDir string) (*LatestGenerationInfo, error) {
	termDir, term, err := l.findLatestPrimaryTerm(translogDataDir)
	if err != nil {
		return nil, err
	}

	tlogFile, generation, err := l.findLatestTranslogFile(termDir)
	if err != nil {
		return nil, err
	}

	info := &LatestGenerationInfo{
		PrimaryTermDir: termDir,
		PrimaryTerm:    term,
		TranslogFile:   tlogFile,
		Generation:     generation,
		CheckpointFile: core.CheckpointFileNameFor(tlogFile),
	}
	l.logger.Debug("Located latest translog generation",
		"primary_term", info.PrimaryTerm, "generation", info.Generation, "path", info.TranslogFile)
	return info, nil
}

// findLatestPrimaryTerm selects the numerically largest primary-term
// directory below dir.
func (l *Locator) findLatestPrimaryTerm(dir string) (string, uint64, error) {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, &core.NotFoundError{Reason: "translog directory does not exist", Path: dir}
		}
		l.logger.Error("Failed to list translog directory", "path", dir, "error", err)
		return "", 0, fmt.Errorf("failed to list translog directory %s: %w", dir, err)
	}

	type termCandidate struct {
		name string
		term uint64
	}
	candidates := make([]termCandidate, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		term, err := core.ParsePrimaryTermDirName(entry.Name())
		if err != nil {
			// Not a primary-term directory; excluded, not an error.
			continue
		}
		candidates = append(candidates, termCandidate{name: entry.Name(), term: term})
	}
	if len(candidates) == 0 {
		return "", 0, &core.NotFoundError{Reason: "no primary term directories", Path: dir}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].term > candidates[j].term
	})
	latest := candidates[0]
	return filepath.Join(dir, latest.name), latest.term, nil
}

// findLatestTranslogFile selects the generation file with the largest
// generation number inside a primary-term directory.
func (l *Locator) findLatestTranslogFile(termDir string) (string, uint64, error) {
	entries, err := l.fs.ReadDir(termDir)
	if err != nil {
		l.logger.Error("Failed to list primary term directory", "path", termDir, "error", err)
		return "", 0, fmt.Errorf("failed to list primary term directory %s: %w", termDir, err)
	}

	type genCandidate struct {
		name       string
		generation uint64
	}
	candidates := make([]genCandidate, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		// A malformed digit group yields generation 0 but the file stays a
		// candidate; see core.ParseTranslogFileName.
		generation, ok := core.ParseTranslogFileName(entry.Name())
		if !ok {
			continue
		}
		candidates = append(candidates, genCandidate{name: entry.Name(), generation: generation})
	}
	if len(candidates) == 0 {
		return "", 0, &core.NotFoundError{Reason: "no translog files", Path: termDir}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].generation > candidates[j].generation
	})
	latest := candidates[0]
	return filepath.Join(termDir, latest.name), latest.generation, nil
}

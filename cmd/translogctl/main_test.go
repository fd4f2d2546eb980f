package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INLOpen/translogctl/checkpoint"
	"github.com/INLOpen/translogctl/config"
	"github.com/INLOpen/translogctl/metadata"
	"github.com/INLOpen/translogctl/report"
)

// setupFixture builds a node layout under a temp dir: a data directory with
// an index catalog, and a repository with one shard's translog tree.
func setupFixture(t *testing.T) (*config.Config, string) {
	t.Helper()
	baseDir := t.TempDir()

	dataDir := filepath.Join(baseDir, "node", "data")
	stateDir := filepath.Join(dataDir, metadata.StateDirName)
	require.NoError(t, os.MkdirAll(stateDir, 0755))
	catalog := "indices:\n  - name: logs\n    uuid: fCbGb7WnRLmYxJ3a\n"
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, metadata.CatalogFileName), []byte(catalog), 0644))

	// repo is derived as <parent of data dir>/repo
	termDir := filepath.Join(baseDir, "node", "repo", "rem", "fCbGb7WnRLmYxJ3a", "0", "translog", "data", "2")
	require.NoError(t, os.MkdirAll(termDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(termDir, "translog-10.tlog"), []byte("ops"), 0644))

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	cfg.Paths.DataDir = dataDir
	return cfg, filepath.Join(termDir, "translog-10.ckp")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_DecodesLatestCheckpoint(t *testing.T) {
	cfg, ckpPath := setupFixture(t)
	require.NoError(t, checkpoint.Write(nil, ckpPath, checkpoint.Record{
		Offset:           55,
		NumOps:           2,
		Generation:       10,
		MaxSeqNo:         1,
		GlobalCheckpoint: 1,
	}))

	var out bytes.Buffer
	code := run(cfg, "logs", "", "0", report.JSONRenderer{}, &out, testLogger())
	assert.Equal(t, exitOK, code)

	var doc struct {
		IndexUUID string `json:"index_uuid"`
		Location  *struct {
			PrimaryTerm uint64 `json:"primary_term"`
			Generation  uint64 `json:"generation"`
		} `json:"location"`
		Checkpoint []struct {
			Name  string `json:"name"`
			Value int64  `json:"value"`
		} `json:"checkpoint"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "fCbGb7WnRLmYxJ3a", doc.IndexUUID)
	require.NotNil(t, doc.Location)
	assert.Equal(t, uint64(2), doc.Location.PrimaryTerm)
	assert.Equal(t, uint64(10), doc.Location.Generation)
	require.Len(t, doc.Checkpoint, 8)
	assert.Equal(t, "offset", doc.Checkpoint[0].Name)
	assert.Equal(t, int64(55), doc.Checkpoint[0].Value)
}

func TestRun_MissingCheckpointIsNotFailure(t *testing.T) {
	cfg, _ := setupFixture(t) // generation file exists, checkpoint does not

	var out bytes.Buffer
	code := run(cfg, "logs", "", "0", report.TextRenderer{}, &out, testLogger())

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "Latest Translog File:")
	assert.Contains(t, out.String(), "checkpoint file does not exist")
}

func TestRun_TruncatedCheckpointExitsNonZero(t *testing.T) {
	cfg, ckpPath := setupFixture(t)
	require.NoError(t, os.WriteFile(ckpPath, nil, 0644)) // zero-length

	var out bytes.Buffer
	code := run(cfg, "logs", "", "0", report.TextRenderer{}, &out, testLogger())

	assert.Equal(t, exitDecode, code)
}

func TestRun_MissingTranslogDirectory(t *testing.T) {
	cfg, _ := setupFixture(t)

	var out bytes.Buffer
	// Shard 7 has no translog tree; expected absence, not an error.
	code := run(cfg, "logs", "", "7", report.TextRenderer{}, &out, testLogger())

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "translog directory does not exist")
}

func TestRun_UUIDOverrideBypassesCatalog(t *testing.T) {
	cfg, ckpPath := setupFixture(t)
	require.NoError(t, checkpoint.Write(nil, ckpPath, checkpoint.Record{Generation: 10}))

	// Remove the catalog; the explicit UUID must be enough.
	require.NoError(t, os.RemoveAll(filepath.Join(cfg.Paths.DataDir, metadata.StateDirName)))

	var out bytes.Buffer
	code := run(cfg, "", "fCbGb7WnRLmYxJ3a", "0", report.TextRenderer{}, &out, testLogger())
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "Translog Checkpoint Details:")
}

func TestRun_UnknownIndex(t *testing.T) {
	cfg, _ := setupFixture(t)

	var out bytes.Buffer
	code := run(cfg, "no-such-index", "", "0", report.TextRenderer{}, &out, testLogger())
	assert.Equal(t, exitUsage, code)
}

func TestSelectRenderer(t *testing.T) {
	r, err := selectRenderer("text")
	require.NoError(t, err)
	assert.IsType(t, report.TextRenderer{}, r)

	r, err = selectRenderer("JSON")
	require.NoError(t, err)
	assert.IsType(t, report.JSONRenderer{}, r)

	_, err = selectRenderer("xml")
	require.Error(t, err)
}

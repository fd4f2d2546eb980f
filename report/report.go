// Package report renders the result of a shard translog inspection: the
// provenance banner, the resolved path chain, and the decoded checkpoint
// fields. Renderers must print each checkpoint field on its own line and
// preserve field order; they never reorder or filter.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/INLOpen/translogctl/checkpoint"
	"github.com/INLOpen/translogctl/layout"
	"github.com/INLOpen/translogctl/translog"
)

// Report collects everything one inspection run produced.
type Report struct {
	Index     string
	ShardID   string
	IndexUUID string
	DataPath  string
	RepoPath  string

	Paths layout.ShardPaths

	// Location is nil when no translog generation was found; NotFoundReason
	// then carries the explanation. The same applies to a located generation
	// whose checkpoint file is absent.
	Location       *translog.LatestGenerationInfo
	NotFoundReason string

	// Checkpoint holds the decoded fields in layout order, nil when the
	// checkpoint was not decoded.
	Checkpoint []checkpoint.Field
}

// Renderer writes a Report to an output sink.
type Renderer interface {
	Render(w io.Writer, r *Report) error
}

// TextRenderer produces the human-readable banner-and-table output.
type TextRenderer struct{}

func (TextRenderer) Render(w io.Writer, r *Report) error {
	fmt.Fprintln(w, "==========================================================")
	fmt.Fprintln(w, "Reading Remote Shard Data")
	fmt.Fprintln(w, "==========================================================")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Index:\t%s\n", r.Index)
	fmt.Fprintf(tw, "Shard ID:\t%s\n", r.ShardID)
	fmt.Fprintf(tw, "Index UUID:\t%s\n", r.IndexUUID)
	fmt.Fprintf(tw, "Data path:\t%s\n", r.DataPath)
	fmt.Fprintf(tw, "Repo path:\t%s\n", r.RepoPath)
	tw.Flush()

	fmt.Fprintln(w, "\nConstructed Paths:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Base Path:\t%s\n", r.Paths.Base)
	fmt.Fprintf(tw, "Index Path:\t%s\n", r.Paths.Index)
	fmt.Fprintf(tw, "Shard Path:\t%s\n", r.Paths.Shard)
	fmt.Fprintf(tw, "Translog Path:\t%s\n", r.Paths.Translog)
	tw.Flush()

	if r.Location != nil {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Latest Primary Term Directory:\t%s\n", r.Location.PrimaryTermDir)
		fmt.Fprintf(tw, "Latest Translog File:\t%s\n", r.Location.TranslogFile)
		fmt.Fprintf(tw, "Corresponding Checkpoint File:\t%s\n", r.Location.CheckpointFile)
		tw.Flush()
	}

	if r.NotFoundReason != "" {
		fmt.Fprintf(w, "\nTranslog data not found: %s\n", r.NotFoundReason)
	}

	if r.Checkpoint != nil {
		fmt.Fprintln(w, "\nTranslog Checkpoint Details:")
		fmt.Fprintln(w, "==========================")
		for _, field := range r.Checkpoint {
			fmt.Fprintf(w, "%s=%d\n", field.Name, field.Value)
		}
	}
	return nil
}

// JSONRenderer emits the report as a single JSON document, suitable for
// piping into other tooling.
type JSONRenderer struct{}

type jsonField struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type jsonLocation struct {
	PrimaryTermDir string `json:"primary_term_dir"`
	PrimaryTerm    uint64 `json:"primary_term"`
	TranslogFile   string `json:"translog_file"`
	Generation     uint64 `json:"generation"`
	CheckpointFile string `json:"checkpoint_file"`
}

type jsonReport struct {
	Index     string `json:"index"`
	ShardID   string `json:"shard_id"`
	IndexUUID string `json:"index_uuid"`
	DataPath  string `json:"data_path"`
	RepoPath  string `json:"repo_path"`

	BasePath     string `json:"base_path"`
	IndexPath    string `json:"index_path"`
	ShardPath    string `json:"shard_path"`
	TranslogPath string `json:"translog_path"`

	Location       *jsonLocation `json:"location,omitempty"`
	NotFoundReason string        `json:"not_found_reason,omitempty"`
	Checkpoint     []jsonField   `json:"checkpoint,omitempty"`
}

func (JSONRenderer) Render(w io.Writer, r *Report) error {
	doc := jsonReport{
		Index:          r.Index,
		ShardID:        r.ShardID,
		IndexUUID:      r.IndexUUID,
		DataPath:       r.DataPath,
		RepoPath:       r.RepoPath,
		BasePath:       r.Paths.Base,
		IndexPath:      r.Paths.Index,
		ShardPath:      r.Paths.Shard,
		TranslogPath:   r.Paths.Translog,
		NotFoundReason: r.NotFoundReason,
	}
	if r.Location != nil {
		doc.Location = &jsonLocation{
			PrimaryTermDir: r.Location.PrimaryTermDir,
			PrimaryTerm:    r.Location.PrimaryTerm,
			TranslogFile:   r.Location.TranslogFile,
			Generation:     r.Location.Generation,
			CheckpointFile: r.Location.CheckpointFile,
		}
	}
	for _, field := range r.Checkpoint {
		doc.Checkpoint = append(doc.Checkpoint, jsonField{Name: field.Name, Value: field.Value})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

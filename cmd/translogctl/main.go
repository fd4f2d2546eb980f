package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/INLOpen/translogctl/checkpoint"
	"github.com/INLOpen/translogctl/config"
	"github.com/INLOpen/translogctl/core"
	"github.com/INLOpen/translogctl/layout"
	"github.com/INLOpen/translogctl/metadata"
	"github.com/INLOpen/translogctl/report"
	"github.com/INLOpen/translogctl/translog"
)

// Exit codes: 0 for success or expected absence of translog data, 1 for
// usage/configuration/metadata failures, 2 when the checkpoint exists but
// cannot be decoded.
const (
	exitOK     = 0
	exitUsage  = 1
	exitDecode = 2
)

func main() {
	// Define command-line flags
	indexName := flag.String("index", "", "Index name (required)")
	shardID := flag.Int("shard-id", -1, "Shard id (required)")
	repoPath := flag.String("path.repo", "", "Repository path (overrides config and the derived default)")
	dataPath := flag.String("path.data", "", "Node data path (overrides config)")
	indexUUID := flag.String("index-uuid", "", "Index UUID (bypasses the index catalog lookup)")
	configPath := flag.String("config", "translogctl.yaml", "Path to the configuration file")
	format := flag.String("format", "", "Output format: text, json or auto (overrides config)")
	logLevel := flag.String("log-level", "", "Logging level (debug, info, warn, error; overrides config)")
	logOutput := flag.String("log-output", "", "Log output (stdout, stderr, file, none; overrides config)")
	logFile := flag.String("log-file", "", "Path to log file if output is 'file' (overrides config)")
	flag.Parse()

	// Validate required flags
	if *indexName == "" && *indexUUID == "" {
		fmt.Fprintln(os.Stderr, "Usage: translogctl -index <name> -shard-id <id> [-path.repo <path>]")
		flag.PrintDefaults()
		os.Exit(exitUsage)
	}
	if *shardID < 0 {
		fmt.Fprintln(os.Stderr, "Error: -shard-id is required and must be non-negative.")
		os.Exit(exitUsage)
	}

	// Load configuration, then apply flag overrides.
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		os.Exit(exitUsage)
	}
	if *dataPath != "" {
		cfg.Paths.DataDir = *dataPath
	}
	if *repoPath != "" {
		cfg.Paths.RepoDir = *repoPath
	}
	if *format != "" {
		cfg.Report.Format = *format
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logOutput != "" {
		cfg.Logging.Output = *logOutput
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}

	logger, logCloser, err := createLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to create logger", "error", err)
		os.Exit(exitUsage)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	renderer, err := selectRenderer(cfg.Report.Format)
	if err != nil {
		logger.Error("Invalid report format", "format", cfg.Report.Format, "error", err)
		os.Exit(exitUsage)
	}

	os.Exit(run(cfg, *indexName, *indexUUID, strconv.Itoa(*shardID), renderer, os.Stdout, logger))
}

func run(cfg *config.Config, indexName, indexUUID, shardID string, renderer report.Renderer, out io.Writer, logger *slog.Logger) int {
	// Resolve the index UUID from the node's index catalog unless it was
	// supplied directly. There is no fallback: without the UUID the shard's
	// remote path cannot be derived.
	if indexUUID == "" {
		catalogPath := filepath.Join(cfg.Paths.DataDir, metadata.StateDirName, metadata.CatalogFileName)
		resolver, err := metadata.LoadCatalog(catalogPath)
		if err != nil {
			logger.Error("Failed to load index catalog", "path", catalogPath, "error", err)
			return exitUsage
		}
		uuid, err := resolver.LookupUUID(indexName)
		if err != nil {
			logger.Error("Failed to resolve index UUID", "index", indexName, "error", err)
			return exitUsage
		}
		indexUUID = uuid
	}

	repoRoot := cfg.RepoRoot()
	paths := layout.Resolve(repoRoot, indexUUID, shardID)

	rep := &report.Report{
		Index:     indexName,
		ShardID:   shardID,
		IndexUUID: indexUUID,
		DataPath:  cfg.Paths.DataDir,
		RepoPath:  repoRoot,
		Paths:     paths,
	}

	locator := translog.NewLocator(translog.Options{Logger: logger})
	info, err := locator.FindLatestGeneration(paths.Translog)
	if err != nil {
		var notFound *core.NotFoundError
		if errors.As(err, &notFound) {
			rep.NotFoundReason = notFound.Reason
		} else {
			// An I/O failure ends the scan but is not a corruption verdict.
			logger.Error("Failed to scan translog directory", "path", paths.Translog, "error", err)
			rep.NotFoundReason = err.Error()
		}
		render(renderer, rep, out, logger)
		return exitOK
	}
	rep.Location = info

	record, err := checkpoint.Read(nil, info.CheckpointFile)
	if err != nil {
		var notFound *core.NotFoundError
		switch {
		case errors.As(err, &notFound):
			rep.NotFoundReason = notFound.Reason
			render(renderer, rep, out, logger)
			return exitOK
		case core.IsDecodeError(err):
			logger.Error("Failed to decode checkpoint", "path", info.CheckpointFile, "error", err)
			render(renderer, rep, out, logger)
			return exitDecode
		default:
			logger.Error("Failed to read checkpoint", "path", info.CheckpointFile, "error", err)
			render(renderer, rep, out, logger)
			return exitOK
		}
	}
	rep.Checkpoint = record.Fields()

	render(renderer, rep, out, logger)
	return exitOK
}

func render(renderer report.Renderer, rep *report.Report, out io.Writer, logger *slog.Logger) {
	if err := renderer.Render(out, rep); err != nil {
		logger.Error("Failed to render report", "error", err)
	}
}

// selectRenderer picks the output renderer. "auto" renders text when stdout
// is a terminal and JSON otherwise.
func selectRenderer(format string) (report.Renderer, error) {
	switch strings.ToLower(format) {
	case "text":
		return report.TextRenderer{}, nil
	case "json":
		return report.JSONRenderer{}, nil
	case "auto", "":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return report.TextRenderer{}, nil
		}
		return report.JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// createLogger creates a slog.Logger based on the provided configuration.
func createLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	var output io.Writer
	var closer io.Closer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	case "file":
		if cfg.File == "" {
			return nil, nil, fmt.Errorf("log output is 'file' but no file path is specified")
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		output = file
		closer = file // The file handle is the closer.
	case "none":
		output = io.Discard
	default:
		return nil, nil, fmt.Errorf("invalid log output: %s", cfg.Output)
	}

	logger := slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

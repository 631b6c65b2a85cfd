package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"bg3-modsettings/core/utils"
	"bg3-modsettings/feature/modsettings/lsx"
	"bg3-modsettings/feature/modsettings/models"

	"go.uber.org/zap"
)

// ErrToolNotFound is returned when the configured extraction tool does not exist.
var ErrToolNotFound = errors.New("extraction tool not found")

// PakExtension is the archive file extension.
const PakExtension = ".pak"

// Extractor recovers the metadata of one archive, using outputDir as scratch space.
type Extractor interface {
	Extract(ctx context.Context, archivePath, outputDir string) (models.ArchiveMetadata, error)
}

// Runner executes the tool and returns its exit error, if any.
type Runner func(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error

// DivineExtractor wraps the Divine command line tool.
type DivineExtractor struct {
	// ToolPath is the Divine executable.
	ToolPath string
	// GameID selects the game profile inside Divine (e.g. "bg3").
	GameID string
	// Timeout bounds a single tool invocation. Zero means no bound.
	Timeout time.Duration

	logger *zap.Logger
	run    Runner
}

// NewDivineExtractor creates an extractor that runs the tool at toolPath.
func NewDivineExtractor(toolPath, gameID string, timeout time.Duration, logger *zap.Logger) *DivineExtractor {
	if gameID == "" {
		gameID = "bg3"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DivineExtractor{
		ToolPath: toolPath,
		GameID:   gameID,
		Timeout:  timeout,
		logger:   logger,
		run:      execRunner,
	}
}

// WithRunner replaces the process runner. It is meant for tests.
func (e *DivineExtractor) WithRunner(r Runner) *DivineExtractor {
	e.run = r
	return e
}

// CheckTool verifies that the tool exists.
func (e *DivineExtractor) CheckTool() error {
	if !utils.FileExists(utils.LongPath(e.ToolPath)) {
		return fmt.Errorf("%w: %s", ErrToolNotFound, e.ToolPath)
	}
	return nil
}

// Args returns the tool arguments used to pull the descriptor out of archivePath into outputDir.
func (e *DivineExtractor) Args(archivePath, outputDir string) []string {
	return []string{
		"-a", "extract-package",
		"-g", e.GameID,
		"-s", utils.LongPath(archivePath),
		"-d", utils.LongPath(outputDir),
		"-x", "*/" + lsx.MetaFileName,
		"-l", "off",
	}
}

// Extract runs the tool against archivePath and parses the descriptor it produces.
func (e *DivineExtractor) Extract(ctx context.Context, archivePath, outputDir string) (models.ArchiveMetadata, error) {
	if err := os.MkdirAll(utils.LongPath(outputDir), 0o755); err != nil {
		return models.ArchiveMetadata{}, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	if err := e.run(ctx, e.ToolPath, e.Args(archivePath, outputDir), &stdout, &stderr); err != nil {
		// An interrupted run is not a tool failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.ArchiveMetadata{}, fmt.Errorf("extraction of %s interrupted: %w", filepath.Base(archivePath), ctxErr)
		}
		e.logger.Warn("Extraction tool failed, using override metadata",
			zap.String("archive", archivePath),
			zap.Error(err),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
		)
		return models.OverrideMetadata(), nil
	}

	metaPath, err := FindMeta(outputDir)
	if err != nil {
		return models.ArchiveMetadata{}, err
	}
	if metaPath == "" {
		e.logger.Warn("Archive has no descriptor, using override metadata", zap.String("archive", archivePath))
		return models.OverrideMetadata(), nil
	}

	meta, err := lsx.ParseMetaFile(metaPath)
	if err != nil {
		return models.ArchiveMetadata{}, fmt.Errorf("failed to parse descriptor of %s: %w", filepath.Base(archivePath), err)
	}

	e.logger.Debug("Extracted archive metadata",
		zap.String("archive", archivePath),
		zap.String("uuid", meta.UUID.Value),
		zap.String("name", meta.Name.Value),
	)
	return meta, nil
}

// FindMeta returns the first meta.lsx found under root, or "" when there is none.
func FindMeta(root string) (string, error) {
	var found string
	err := filepath.WalkDir(utils.LongPath(root), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == lsx.MetaFileName {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to search for descriptor: %w", err)
	}
	return found, nil
}

// ListArchives returns the .pak files directly inside dir, in directory order.
// A missing directory yields no archives.
func ListArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(utils.LongPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list archives in %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), PakExtension) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func execRunner(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	hideWindow(cmd)
	return cmd.Run()
}

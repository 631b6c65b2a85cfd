package scriptextender

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"bg3-modsettings/core/utils"

	"go.uber.org/zap"
)

// RelocationReport lists what a relocation moved.
type RelocationReport struct {
	Source  string   `json:"source"`
	Target  string   `json:"target"`
	Moved   []Move   `json:"moved"`
	Removed []string `json:"removed"`
}

// Move is one relocated file.
type Move struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Relocator moves files from Source into Target.
type Relocator struct {
	// Source is the game's Script Extender directory.
	Source string
	// Target is the overwrite SE_CONFIG directory.
	Target string

	logger *zap.Logger
}

// NewRelocator creates a relocator.
func NewRelocator(source, target string, logger *zap.Logger) *Relocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relocator{Source: source, Target: target, logger: logger}
}

// Relocate moves everything under Source into Target.
func (r *Relocator) Relocate() (*RelocationReport, error) {
	report := &RelocationReport{Source: r.Source, Target: r.Target}

	if !utils.DirExists(utils.LongPath(r.Source)) {
		r.logger.Debug("No Script Extender directory to relocate", zap.String("source", r.Source))
		return report, nil
	}

	entries, err := os.ReadDir(utils.LongPath(r.Source))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.Source, err)
	}

	for _, e := range entries {
		src := filepath.Join(r.Source, e.Name())
		if e.IsDir() {
			if err := r.moveTree(src, filepath.Join(r.Target, e.Name()), report); err != nil {
				return report, err
			}
			if err := os.RemoveAll(utils.LongPath(src)); err != nil {
				return report, fmt.Errorf("failed to remove %s: %w", src, err)
			}
			report.Removed = append(report.Removed, src)
			continue
		}

		dst := filepath.Join(r.Target, filepath.Base(r.Source), e.Name())
		if err := moveFile(src, dst); err != nil {
			return report, err
		}
		report.Moved = append(report.Moved, Move{From: src, To: dst})
	}

	if left, err := os.ReadDir(utils.LongPath(r.Source)); err == nil && len(left) == 0 {
		if err := os.Remove(utils.LongPath(r.Source)); err != nil {
			return report, fmt.Errorf("failed to remove %s: %w", r.Source, err)
		}
		report.Removed = append(report.Removed, r.Source)
	}

	r.logger.Info("Relocated Script Extender files",
		zap.String("target", r.Target),
		zap.Int("moved", len(report.Moved)),
		zap.Int("removed", len(report.Removed)),
	)
	return report, nil
}

// moveTree moves every file below src to the same relative path below dst.
func (r *Relocator) moveTree(src, dst string, report *RelocationReport) error {
	return filepath.WalkDir(utils.LongPath(src), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(utils.LongPath(src), path)
		if err != nil {
			return err
		}
		from := filepath.Join(src, rel)
		to := filepath.Join(dst, rel)
		if err := moveFile(from, to); err != nil {
			return err
		}
		report.Moved = append(report.Moved, Move{From: from, To: to})
		return nil
	})
}

// moveFile renames src to dst, copying across devices when a rename is not possible.
func moveFile(src, dst string) error {
	if err := os.MkdirAll(utils.LongPath(filepath.Dir(dst)), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.Rename(utils.LongPath(src), utils.LongPath(dst)); err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("failed to move %s: %w", src, err)
	}
	if err := os.Remove(utils.LongPath(src)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", src, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(utils.LongPath(src))
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(utils.LongPath(dst), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bg3-modsettings/feature/modsettings/synth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoRuns is returned by Latest when a profile has no recorded pass.
var ErrNoRuns = errors.New("no synthesis runs recorded")

// Store persists synthesis runs.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the runs table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Run{}); err != nil {
		return fmt.Errorf("failed to migrate synthesis history: %w", err)
	}
	return nil
}

// Record stores result under profile and returns the new row.
func (s *Store) Record(ctx context.Context, profile string, result *synth.Result) (*Run, error) {
	archives := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		archives = append(archives, f.Archive)
	}

	run := &Run{
		RunID:    uuid.NewString(),
		Profile:  profile,
		Modules:  result.Modules,
		Skipped:  len(result.Skipped),
		Failures: len(result.Failures),
		Digest:   result.Digest,
		Failed:   strings.Join(archives, ","),
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record synthesis run: %w", err)
	}
	return run, nil
}

// Latest returns the most recent run of profile.
func (s *Store) Latest(ctx context.Context, profile string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Where("profile = ?", profile).
		Order("created_at DESC").
		Order("id DESC").
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w for profile %s", ErrNoRuns, profile)
		}
		return nil, fmt.Errorf("failed to load latest synthesis run: %w", err)
	}
	return &run, nil
}

// List returns up to limit runs of profile, newest first. A non-positive limit returns all runs.
func (s *Store) List(ctx context.Context, profile string, limit int) ([]Run, error) {
	var runs []Run
	query := s.db.WithContext(ctx).
		Where("profile = ?", profile).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list synthesis runs: %w", err)
	}
	return runs, nil
}

package integrity

import (
	"context"

	"bg3-modsettings/core/storage"
	"bg3-modsettings/feature/integrity/checks"
	"bg3-modsettings/feature/modsettings/models"

	"go.uber.org/zap"
)

// Config holds the local paths the checks inspect.
type Config struct {
	ToolPath   string
	ScratchDir string
}

// Report is the combined result of a run.
type Report struct {
	Healthy bool            `json:"healthy"`
	Checks  []checks.Result `json:"checks"`
}

// Service handles integrity checks.
type Service struct {
	cfg      Config
	profiles models.Profiles
	client   storage.Client
	bucket   string
	logger   *zap.Logger
}

// NewService creates a new integrity service. client may be nil when storage is disabled.
func NewService(cfg Config, profiles models.Profiles, client storage.Client, bucket string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:      cfg,
		profiles: profiles,
		client:   client,
		bucket:   bucket,
		logger:   logger,
	}
}

// CheckTool checks the extraction tool.
func (s *Service) CheckTool() checks.Result {
	return checks.CheckTool(s.cfg.ToolPath)
}

// CheckScratch checks the scratch directory.
func (s *Service) CheckScratch() checks.Result {
	return checks.CheckScratch(s.cfg.ScratchDir)
}

// CheckBucket checks the backup bucket and creates it when fix is set.
func (s *Service) CheckBucket(ctx context.Context, fix bool) checks.Result {
	r := checks.CheckBucket(ctx, s.client, s.bucket)
	if r.OK() || !fix {
		return r
	}
	if err := checks.FixBucket(ctx, s.client, s.bucket, s.logger); err != nil {
		return r
	}
	return checks.CheckBucket(ctx, s.client, s.bucket)
}

// CheckProfile checks that profile exists, is writable and holds a readable cache.
func (s *Service) CheckProfile(profile string) []checks.Result {
	dir, err := s.profiles.Dir(profile)
	if err != nil {
		return []checks.Result{{Name: checks.NameProfile, Status: checks.StatusError, Error: err.Error()}}
	}
	return []checks.Result{checks.CheckWritable(dir), checks.CheckCache(dir)}
}

// Run executes every check. Profile checks run only when profile is set.
func (s *Service) Run(ctx context.Context, profile string) *Report {
	results := []checks.Result{
		s.CheckTool(),
		s.CheckScratch(),
		s.CheckBucket(ctx, false),
	}
	if profile != "" {
		results = append(results, s.CheckProfile(profile)...)
	}

	report := &Report{Healthy: true, Checks: results}
	for _, r := range results {
		if !r.OK() {
			report.Healthy = false
			s.logger.Warn("Integrity check failed", zap.String("check", r.Name), zap.String("error", r.Error))
		}
	}
	return report
}

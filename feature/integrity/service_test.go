package integrity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bg3-modsettings/core/storage/mocks"
	"bg3-modsettings/feature/integrity/checks"
	"bg3-modsettings/feature/modsettings/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	root     string
	tool     string
	profiles models.Profiles
}

func newFixture(t *testing.T) fixture {
	root := t.TempDir()
	f := fixture{
		root:     root,
		tool:     filepath.Join(root, "tools", "divine.exe"),
		profiles: models.Profiles{Root: filepath.Join(root, "profiles")},
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(f.tool), 0o755))
	require.NoError(t, os.WriteFile(f.tool, []byte("MZ"), 0o755))
	_, err := f.profiles.Ensure("Default")
	require.NoError(t, err)
	return f
}

func (f fixture) config() Config {
	return Config{ToolPath: f.tool, ScratchDir: filepath.Join(f.root, "scratch")}
}

func statuses(r *Report) map[string]checks.Status {
	out := make(map[string]checks.Status, len(r.Checks))
	for _, c := range r.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestService_Run(t *testing.T) {
	f := newFixture(t)

	t.Run("Healthy Without Storage", func(t *testing.T) {
		svc := NewService(f.config(), f.profiles, nil, "", zap.NewNop())
		report := svc.Run(context.Background(), "Default")

		assert.True(t, report.Healthy)
		assert.Equal(t, map[string]checks.Status{
			checks.NameTool:    checks.StatusOK,
			checks.NameScratch: checks.StatusOK,
			checks.NameBucket:  checks.StatusSkipped,
			checks.NameProfile: checks.StatusOK,
			checks.NameCache:   checks.StatusSkipped,
		}, statuses(report))
	})

	t.Run("Missing Tool And Profile", func(t *testing.T) {
		cfg := f.config()
		cfg.ToolPath = filepath.Join(f.root, "nope.exe")
		svc := NewService(cfg, f.profiles, nil, "", zap.NewNop())
		report := svc.Run(context.Background(), "Ghost")

		assert.False(t, report.Healthy)
		got := statuses(report)
		assert.Equal(t, checks.StatusError, got[checks.NameTool])
		assert.Equal(t, checks.StatusError, got[checks.NameProfile])
		assert.Len(t, report.Checks, 4)
	})

	t.Run("No Profile", func(t *testing.T) {
		svc := NewService(f.config(), f.profiles, nil, "", zap.NewNop())
		report := svc.Run(context.Background(), "")
		assert.Len(t, report.Checks, 3)
	})
}

func TestService_CheckBucket(t *testing.T) {
	f := newFixture(t)

	t.Run("Fix Creates Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil).Once()
		mockClient.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil).Once()
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil).Once()

		svc := NewService(f.config(), f.profiles, mockClient, "test-bucket", zap.NewNop())
		r := svc.CheckBucket(context.Background(), true)
		assert.Equal(t, checks.StatusOK, r.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("No Fix", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

		svc := NewService(f.config(), f.profiles, mockClient, "test-bucket", zap.NewNop())
		r := svc.CheckBucket(context.Background(), false)
		assert.Equal(t, checks.StatusError, r.Status)
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})
}

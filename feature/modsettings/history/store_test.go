package history

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"bg3-modsettings/core/database"
	"bg3-modsettings/feature/modsettings/synth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLiteStore(t *testing.T) *Store {
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "history.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func sampleResult() *synth.Result {
	return &synth.Result{
		Modules: 3,
		Skipped: []string{"Loose"},
		Failures: []synth.Failure{
			{Mod: "Bad", Archive: "bad.pak", Error: "malformed descriptor"},
			{Mod: "Worse", Archive: "worse.pak", Error: "malformed descriptor"},
		},
		Digest: "abc123",
	}
}

func TestStore_RecordAndLatest(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, "Default", sampleResult())
	require.NoError(t, err)
	assert.Len(t, first.RunID, 36)
	assert.Equal(t, 3, first.Modules)
	assert.Equal(t, 1, first.Skipped)
	assert.Equal(t, 2, first.Failures)
	assert.Equal(t, []string{"bad.pak", "worse.pak"}, first.FailedArchives())
	assert.False(t, first.CreatedAt.IsZero())

	second, err := store.Record(ctx, "Default", &synth.Result{Modules: 4, Digest: "def456"})
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Nil(t, second.FailedArchives())

	_, err = store.Record(ctx, "Other", &synth.Result{Modules: 1})
	require.NoError(t, err)

	latest, err := store.Latest(ctx, "Default")
	require.NoError(t, err)
	assert.Equal(t, second.RunID, latest.RunID)
	assert.Equal(t, "def456", latest.Digest)
}

func TestStore_List(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Record(ctx, "Default", &synth.Result{Modules: i})
		require.NoError(t, err)
	}

	runs, err := store.List(ctx, "Default", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].Modules)
	assert.Equal(t, 1, runs[1].Modules)

	all, err := store.List(ctx, "Default", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.List(ctx, "Missing", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_LatestNoRuns(t *testing.T) {
	store := setupSQLiteStore(t)

	run, err := store.Latest(context.Background(), "Default")
	assert.ErrorIs(t, err, ErrNoRuns)
	assert.Nil(t, run)
}

func TestStore_RecordMySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `synthesis_runs`")).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	run, err := NewStore(db).Record(context.Background(), "Default", sampleResult())
	require.NoError(t, err)
	assert.Equal(t, uint(7), run.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordMySQLError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `synthesis_runs`")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	run, err := NewStore(db).Record(context.Background(), "Default", sampleResult())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, run)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LatestMySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "run_id", "profile", "modules", "skipped", "failures", "digest", "failed", "created_at"}).
		AddRow(3, "3f0c2a8e-0000-4000-8000-000000000000", "Default", 5, 0, 1, "abc", "bad.pak", created)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `synthesis_runs` WHERE profile = ?")).
		WillReturnRows(rows)

	run, err := NewStore(db).Latest(context.Background(), "Default")
	require.NoError(t, err)
	assert.Equal(t, 5, run.Modules)
	assert.Equal(t, []string{"bad.pak"}, run.FailedArchives())
	assert.True(t, created.Equal(run.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_TableName(t *testing.T) {
	assert.Equal(t, "synthesis_runs", Run{}.TableName())
}

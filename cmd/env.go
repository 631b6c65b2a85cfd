package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bg3-modsettings/core/config"
	"bg3-modsettings/core/database"
	"bg3-modsettings/core/logger"
	"bg3-modsettings/core/storage"
	"bg3-modsettings/feature/modsettings"
	"bg3-modsettings/feature/modsettings/extract"
	"bg3-modsettings/feature/modsettings/history"
	"bg3-modsettings/feature/modsettings/models"
	"bg3-modsettings/feature/scriptextender"

	"go.uber.org/zap"
)

// env is what every command builds before doing its work.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &env{cfg: cfg, log: l}, nil
}

func (e *env) profiles() models.Profiles {
	return models.Profiles{Root: e.cfg.Game.ProfilesDir}
}

func (e *env) gamePaths() models.GamePaths {
	return models.NewGamePaths(e.cfg.Game.AppDataDir)
}

func (e *env) extractor() *extract.DivineExtractor {
	return extract.NewDivineExtractor(e.cfg.Game.ToolPath, e.cfg.Game.GameID, e.cfg.Game.ExtractTimeout(), e.log)
}

// history opens the synthesis history store. It returns nil when the store is disabled or unreachable.
func (e *env) history(ctx context.Context) *history.Store {
	if !e.cfg.Database.Enabled {
		return nil
	}
	db, err := database.Connect(e.cfg.Database)
	if err != nil {
		e.log.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	store := history.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		e.log.Warn("Synthesis history disabled", zap.Error(err))
		return nil
	}
	e.log.Info("Connected to history database", zap.String("driver", e.cfg.Database.Driver))
	return store
}

// storage returns the backup storage client, nil when storage is disabled.
func (e *env) storage() (storage.Client, error) {
	if !e.cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(e.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

// service builds the lifecycle service. store may be nil.
func (e *env) service(store *history.Store) *modsettings.Service {
	return modsettings.NewService(e.profiles(), e.extractor(), e.cfg.Game.ScratchDir, store, e.log)
}

func (e *env) relocator() *scriptextender.Relocator {
	target := filepath.Join(e.cfg.Game.OverwriteDir, models.ScriptExtenderDir)
	return scriptextender.NewRelocator(e.gamePaths().ScriptExtender(), target, e.log)
}

// readRoster decodes a {"mods": [...]} roster from path, or from stdin when path is "-" or empty.
func readRoster(path string) (models.ModList, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open roster: %w", err)
		}
		defer f.Close()
		r = f
	}
	return models.DecodeModList(r)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

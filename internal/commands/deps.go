package commands

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vkarthik/canvault/internal/canvas"
	"github.com/vkarthik/canvault/internal/config"
	"github.com/vkarthik/canvault/internal/index"
	"github.com/vkarthik/canvault/internal/syncer"
	"github.com/vkarthik/canvault/internal/update"
	"github.com/vkarthik/canvault/internal/vault"
)

type appDeps struct {
	cfg   config.Config
	store *vault.DirStore
	meta  vault.StoreMeta
	repo  *index.SQLiteRepository
	sync  *syncer.Syncer
}

// buildDeps wires the vault store, the sqlite index and, when remote
// credentials are configured, the assignment syncer. A missing remote
// config is not an error here so the offline views still work.
func buildDeps(configPath string) (*appDeps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateVault(); err != nil {
		return nil, err
	}

	store, err := vault.NewDirStore(cfg.VaultDir)
	if err != nil {
		return nil, err
	}

	deps := &appDeps{
		cfg:   cfg,
		store: store,
		meta:  vault.StoreMeta{Store: store},
	}

	if cfg.IndexPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.IndexPath), 0o755); err != nil {
			return nil, fmt.Errorf("commands: create index dir: %w", err)
		}
		repo, err := index.Open(cfg.IndexPath)
		if err != nil {
			return nil, err
		}
		deps.repo = repo
	}

	if cfg.ValidateSync() == nil && deps.repo != nil {
		client, err := canvas.NewClient(cfg.BaseURL, cfg.Token, http.DefaultClient)
		if err != nil {
			return nil, err
		}
		deps.sync = &syncer.Syncer{
			Source: client,
			Store:  store,
			Index:  deps.repo,
			Config: cfg,
		}
	}

	return deps, nil
}

func (d *appDeps) Close() {
	if d.repo != nil {
		d.repo.Close()
	}
}

func (d *appDeps) updateDeps(rt update.RuntimeConfig) update.Deps {
	var notifier syncer.Notifier = syncer.NoopNotifier{}
	if rt.DesktopNotifications {
		notifier = syncer.ExecNotifier{}
	}
	return update.Deps{
		Store:       d.store,
		Meta:        d.meta,
		Syncer:      d.sync,
		Notifier:    notifier,
		Cfg:         d.cfg,
		SyncOnStart: rt.SyncOnStart,
	}
}

package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
)

// watch runs mode once and again after every batch of source changes until ctx is done.
// It returns the exit status of the last run.
func (a *App) watch(ctx context.Context, mode domain.BuildMode, cfg *domain.Config) (int, error) {
	changes, err := a.watcher.Watch(ctx, watchRoots(mode, cfg))
	if err != nil {
		return 1, zerr.Wrap(err, "failed to start watching")
	}

	status, err := a.runOnce(ctx, mode, cfg)
	if err != nil {
		return status, err
	}

	a.logger.Info("watching for changes, press Ctrl+C to stop")
	for paths := range changes {
		if ctx.Err() != nil {
			break
		}
		a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))
		a.logger.Debug("changed: " + fmt.Sprint(paths))

		status, err = a.runOnce(ctx, mode, cfg)
		if err != nil {
			return status, err
		}
	}
	return status, nil
}

// watchRoots returns the directories whose changes affect mode.
func watchRoots(mode domain.BuildMode, cfg *domain.Config) []string {
	if mode == domain.ModeRebuildShaders {
		return []string{cfg.Shaders.Source}
	}

	var roots []string
	for _, src := range cfg.EntryPoints() {
		roots = append(roots, filepath.Dir(src))
	}
	roots = append(roots, cfg.Toolchain.IncludeDirs...)
	slices.Sort(roots)
	return slices.Compact(roots)
}

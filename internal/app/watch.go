package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/respec/internal/adapters/watcher"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/engine/batch"
)

// watch runs the batch once, then re-sanitizes packages whose descriptors
// change. Events are debounced and content-hashed so editor save bursts
// and our own emitted output do not cause redundant runs.
func (a *App) watch(ctx context.Context, cfg *domain.Config, runner *batch.Runner, only []string) error {
	if err := a.runOnce(ctx, cfg, runner, only); err != nil && !errors.Is(err, domain.ErrBatchFailed) {
		return err
	}

	w, err := watcher.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	cache := watcher.NewDigestCache()
	deb := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		names := packagesForPaths(paths)
		if len(names) == 0 {
			return
		}
		if err := a.runOnce(ctx, cfg, runner, names); err != nil && !errors.Is(err, domain.ErrBatchFailed) {
			a.logger.Error(err)
		}
	})
	defer deb.Flush()

	root := filepath.Join(cfg.Workspace, domain.ReposDirName)
	if err := w.Start(ctx, root); err != nil {
		return err
	}
	a.logger.Info("watching " + root)

	for event := range w.Events() {
		if filepath.Ext(event.Path) != ".spec" {
			continue
		}
		if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
			cache.Forget(event.Path)
			continue
		}
		if !cache.Changed(event.Path) {
			continue
		}
		if a.alreadySanitized(cfg.Workspace, event.Path) {
			continue
		}
		deb.Add(event.Path)
	}

	return ctx.Err()
}

// alreadySanitized reports whether the file at path carries exactly the
// text recorded by the package's last successful correction. The event
// fired by our own emitted output matches and is dropped here.
func (a *App) alreadySanitized(root, path string) bool {
	pkg := filepath.Base(filepath.Dir(path))
	rec, err := a.ledger.Get(root, pkg)
	if err != nil || rec == nil {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return domain.TextDigest(string(data)) == rec.Digest
}

// packagesForPaths maps changed descriptor paths back to manifest names.
// Descriptors live at <workspace>/repos/<name>/<file>.spec.
func packagesForPaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(filepath.Dir(path))
		if name == "." || name == string(filepath.Separator) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

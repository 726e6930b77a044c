package verifier

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay is how long Watch waits for more changes to a file before checking it again.
const DebounceDelay = 100 * time.Millisecond

// Watch checks the given files again each time they are written or recreated, calling fn with each
// new result, until ctx is done. Files are not checked when Watch starts.
// The directories holding the files are watched rather than the files themselves, so that files
// replaced by editors keep being watched.
func (v *Verifier) Watch(ctx context.Context, paths []string, fn func(Result)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]string, len(paths)) // Cleaned absolute path to given path
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	v.logger.Info("Watching proof files", slog.Int("files", len(paths)), slog.Int("dirs", len(dirs)))

	pending := make(map[string]bool)
	timer := time.NewTimer(DebounceDelay)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			v.logger.Warn("Watch error", slog.String("error", err.Error()))
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			p, ok := watched[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			v.logger.Debug("Proof file changed", slog.String("path", p), slog.String("op", ev.Op.String()))
			pending[p] = true
			timer.Reset(DebounceDelay)
		case <-timer.C:
			for p := range pending {
				if !fileExists(p) {
					continue
				}
				fn(v.Verify(ctx, p))
			}
			pending = make(map[string]bool)
		}
	}
}

package layout

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-parses the layout file whenever it changes and delivers each new
// Layout on the returned channel. Parse failures are logged and skipped, so
// a half-saved file never replaces a working layout. The channel is closed
// when ctx is done.
//
// The caller owns when to apply a delivered layout; the scan loop applies it
// between cycles so the core never sees a layout swap mid-scan.
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan Layout, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory; editors often replace the file on save, which
	// would silently detach a file-level watch.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	out := make(chan Layout, 1)
	go func() {
		defer close(out)
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				l, err := Load(path)
				if err != nil {
					logger.Warn("layout reload failed", "path", path, "error", err)
					continue
				}
				// Keep only the newest layout if the consumer is behind.
				select {
				case out <- l:
				default:
					select {
					case <-out:
					default:
					}
					out <- l
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("layout watcher error", "path", path, "error", err)
			}
		}
	}()
	return out, nil
}

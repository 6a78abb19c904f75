// Package watch rebuilds output when sources change.
//
// A Watcher follows the files of the last import tree. fsnotify only reports
// reliably on directories (editors often save by renaming over the file), so
// the watcher subscribes to each file's directory and filters events down to
// the tracked files. Bursts of events are coalesced by a Debouncer.
//
// After every rebuild the caller hands the new file list to SetFiles, so
// imports added or removed by an edit are picked up:
//
//	w, _ := watch.New(watch.Config{DebounceInterval: 100 * time.Millisecond}, logger)
//	_ = w.SetFiles(result.Files)
//	err := w.Watch(ctx, func(path string) { rebuild() })
//
// A Scheduler triggers additional rebuilds on a cron schedule, for sources
// that change without filesystem events (network mounts, for example).
package watch

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/textc/pkg/compiler"
	"mercator-hq/textc/pkg/watch"
)

func newTestBuilder(t *testing.T, dir, input, output string) *builder {
	t.Helper()
	cmd, _, _ := newTestCommand()
	a, err := newApp(cmd, appOptions{})
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	t.Cleanup(a.Close)

	w, err := watch.New(watch.Config{DebounceInterval: 20 * time.Millisecond}, a.logger.Slog())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = w.Close() })

	b := &builder{
		app:     a,
		input:   filepath.Join(dir, input),
		output:  filepath.Join(dir, output),
		watcher: w,
		printer: newPrinter(cmd),
	}
	return b
}

func TestBuilder_Rebuild(t *testing.T) {
	dir := setupWorkdir(t, map[string]string{
		"main.txt":     "@import(sub/part.txt)\nmain\n",
		"sub/part.txt": "part",
	})
	b := newTestBuilder(t, dir, "main.txt", "out.txt")
	ctx := context.Background()

	b.rebuild(ctx, "initial")
	if err := b.LastError(); err != nil {
		t.Fatalf("initial build error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "out.txt")); got != "part\nmain\n" {
		t.Errorf("output = %q", got)
	}
	if got := len(b.watcher.Files()); got != 2 {
		t.Errorf("watching %d files, want 2", got)
	}
	if got := len(b.watcher.Dirs()); got != 2 {
		t.Errorf("watching %d dirs, want 2", got)
	}

	// A broken import keeps the previous output and tracks the missing file.
	if err := os.WriteFile(filepath.Join(dir, "main.txt"), []byte("@import(new.txt)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	b.rebuild(ctx, "edit")
	if !errors.Is(b.LastError(), compiler.ErrFileNotFound) {
		t.Fatalf("LastError() = %v, want ErrFileNotFound", b.LastError())
	}
	if got := readFile(t, filepath.Join(dir, "out.txt")); got != "part\nmain\n" {
		t.Errorf("output changed after failed build: %q", got)
	}
	found := false
	for _, f := range b.watcher.Files() {
		if strings.HasSuffix(f, "new.txt") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing import not tracked: %v", b.watcher.Files())
	}

	// Creating it recovers.
	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("new\n"), 0644); err != nil {
		t.Fatal(err)
	}
	b.rebuild(ctx, "create")
	if err := b.LastError(); err != nil {
		t.Fatalf("LastError() = %v after recovery", err)
	}
	if got := readFile(t, filepath.Join(dir, "out.txt")); got != "new\n" {
		t.Errorf("output = %q", got)
	}
	if got := len(b.watcher.Files()); got != 2 {
		t.Errorf("watching %d files, want 2 (main.txt, new.txt)", got)
	}
}

func TestBuilder_MissingRoot(t *testing.T) {
	dir := setupWorkdir(t, nil)
	b := newTestBuilder(t, dir, "main.txt", "out.txt")

	b.rebuild(context.Background(), "initial")
	if !errors.Is(b.LastError(), compiler.ErrFileNotFound) {
		t.Fatalf("LastError() = %v", b.LastError())
	}
	files := b.watcher.Files()
	if len(files) != 1 || filepath.Base(files[0]) != "main.txt" {
		t.Errorf("tracked files = %v, want the missing root", files)
	}
}

func TestBuilder_WatchTriggersRebuild(t *testing.T) {
	dir := setupWorkdir(t, map[string]string{
		"main.txt": "@import(part.txt)\n",
		"part.txt": "v1\n",
	})
	b := newTestBuilder(t, dir, "main.txt", "out.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b.rebuild(ctx, "initial")
	rebuilt := make(chan struct{}, 10)
	go func() {
		_ = b.watcher.Watch(ctx, func(path string) {
			b.rebuild(ctx, path)
			rebuilt <- struct{}{}
		})
	}()
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "part.txt"), []byte("v2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for rebuild")
	}
	if got := readFile(t, filepath.Join(dir, "out.txt")); got != "v2\n" {
		t.Errorf("output = %q, want v2", got)
	}
}

func TestTelemetryServer(t *testing.T) {
	dir := setupWorkdir(t, map[string]string{"main.txt": "@import(gone.txt)\n"})
	b := newTestBuilder(t, dir, "main.txt", "out.txt")
	b.rebuild(context.Background(), "initial")

	srv := newTelemetryServer(b.app, b, "127.0.0.1:0")

	get := func(path string) (int, string) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		body, _ := io.ReadAll(rec.Body)
		return rec.Code, string(body)
	}

	if code, _ := get("/healthz"); code != http.StatusOK {
		t.Errorf("/healthz = %d", code)
	}
	if code, body := get("/readyz"); code != http.StatusServiceUnavailable || !strings.Contains(body, "gone.txt") {
		t.Errorf("/readyz = %d %s", code, body)
	}
	if code, body := get("/metrics"); code != http.StatusOK || !strings.Contains(body, `status="file_not_found"`) {
		t.Errorf("/metrics = %d\n%s", code, body)
	}
}

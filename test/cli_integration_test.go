//go:build integration

package test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestCompileEndToEnd runs the binary the way a user would.
func TestCompileEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildTextcBinary(t)
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"test1.txt": "This is a test file.\n",
		"test2.txt": "@import(test1.txt)\nThis file imports test1.",
		"test3.txt": "@import(test2.txt)\nThis file imports test2.",
	})

	cmd := exec.Command(binaryPath, "compile", "-i", "test3.txt", "-o", "out.txt", "--no-color")
	cmd.Dir = tmpDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("compile failed: %v\nOutput: %s", err, output)
	}

	if !bytes.Contains(output, []byte("Compiled file saved to out.txt")) {
		t.Errorf("unexpected output: %s", output)
	}
	got, err := os.ReadFile(filepath.Join(tmpDir, "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "This is a test file.\nThis file imports test1.\nThis file imports test2."
	if string(got) != want {
		t.Errorf("output file = %q, want %q", got, want)
	}
}

// TestCompileMissingImport verifies the exit status and that no output is written.
func TestCompileMissingImport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildTextcBinary(t)
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.txt": "@import(nowhere.txt)\n",
	})

	cmd := exec.Command(binaryPath, "compile", "-i", "main.txt", "-o", "out.txt", "--no-color")
	cmd.Dir = tmpDir
	output, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit status 1, got %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("Error: the file")) || !bytes.Contains(output, []byte("nowhere.txt does not exist")) {
		t.Errorf("unexpected error output: %s", output)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "out.txt")); !os.IsNotExist(err) {
		t.Errorf("output file should not exist: %v", err)
	}
}

// TestWatchServesProbesAndStops exercises watch mode with the telemetry server.
func TestWatchServesProbesAndStops(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildTextcBinary(t)
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.txt": "@import(part.txt)\n",
		"part.txt": "v1\n",
	})
	addr := freeAddress(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "watch", "-i", "main.txt", "-o", "out.txt",
		"--metrics-addr", addr, "--no-color")
	cmd.Dir = tmpDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}()

	if !waitForHealthy("http://"+addr+"/readyz", 10*time.Second) {
		t.Fatalf("watch never became ready\nStdout: %s\nStderr: %s", stdout.String(), stderr.String())
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "part.txt"), []byte("v2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !waitForContent(filepath.Join(tmpDir, "out.txt"), "v2\n", 5*time.Second) {
		t.Errorf("output not rebuilt after change\nStderr: %s", stderr.String())
	}

	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "textc_compiler_compilations_total") {
		t.Errorf("metrics missing compilation counter:\n%s", body)
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatalf("failed to send SIGINT: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch exited with error: %v\nStderr: %s", err, stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Error("watch did not shut down within 5 seconds")
	}
}

// TestCommandVersionOutput tests the version command
func TestCommandVersionOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	output, err := exec.Command(buildTextcBinary(t), "version").CombinedOutput()
	if err != nil {
		t.Fatalf("version command failed: %v\nOutput: %s", err, output)
	}
	if !bytes.HasPrefix(output, []byte("textc ")) {
		t.Errorf("version output should start with 'textc', got: %s", output)
	}
}

// Helper functions

// buildTextcBinary builds the textc binary once per test into a temp dir.
func buildTextcBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "textc")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../cmd/textc")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build textc: %v\nOutput: %s", err, output)
	}
	return binaryPath
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func freeAddress(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	return ln.Addr().String()
}

// waitForHealthy waits for a health endpoint to return 200
func waitForHealthy(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

func waitForContent(path, want string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && string(data) == want {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}

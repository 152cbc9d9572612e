package gateways

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestLocalStorage_RoundTrip tests create, open, rename, and remove
func TestLocalStorage_RoundTrip(t *testing.T) {
	storage := NewLocalStorage()
	tmpDir := t.TempDir()

	tempPath := filepath.Join(tmpDir, "work", "attempt-1.xpi")
	canonical := filepath.Join(tmpDir, "addon.xpi")

	w, err := storage.Create(tempPath)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := w.Write([]byte("signed bytes")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := storage.Rename(tempPath, canonical); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	// The temp path must be gone after the rename
	if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
		t.Error("temp path still exists after Rename()")
	}

	r, err := storage.Open(canonical)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	content, _ := io.ReadAll(r)
	_ = r.Close()
	if string(content) != "signed bytes" {
		t.Errorf("content = %q, want %q", content, "signed bytes")
	}

	if err := storage.Remove(canonical); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := storage.Open(canonical); err == nil {
		t.Error("Open() after Remove() should fail")
	}
}

// TestLocalStorage_CalculateChecksum tests SHA256 checksum calculation
func TestLocalStorage_CalculateChecksum(t *testing.T) {
	storage := NewLocalStorage()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "file.bin")
	if err := os.WriteFile(path, []byte("Hello, World!"), 0600); err != nil {
		t.Fatal(err)
	}

	sum, err := storage.CalculateChecksum(path)
	if err != nil {
		t.Fatalf("CalculateChecksum() error = %v", err)
	}
	want := "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f"
	if sum != want {
		t.Errorf("CalculateChecksum() = %s, want %s", sum, want)
	}

	if _, err := storage.CalculateChecksum(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("CalculateChecksum() on missing file should fail")
	}
}

// TestPrometheusMetrics_Observe tests that observations register without
// affecting callers
func TestPrometheusMetrics_Observe(t *testing.T) {
	// Registration must not panic and observation must be accepted
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	m.ObserveSigningDuration(1234)
}

package gpg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Test importing key from nonexistent file
func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")

	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

// Test importing key from file with no keys
func TestVerifier_ImportKeyFromFile_InvalidContent(t *testing.T) {
	v := NewVerifier()
	tmpDir := t.TempDir()

	keyPath := filepath.Join(tmpDir, "invalid.asc")
	if err := os.WriteFile(keyPath, []byte("not a gpg key"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := v.ImportKeyFromFile(keyPath); err == nil {
		t.Fatal("Expected error for invalid key file, got nil")
	}
	if v.KeyringSize() != 0 {
		t.Errorf("KeyringSize() = %d after failed import, want 0", v.KeyringSize())
	}
}

// Test detached verification without imported keys
func TestVerifier_VerifyDetached_EmptyKeyring(t *testing.T) {
	v := NewVerifier()
	tmpDir := t.TempDir()

	filePath := filepath.Join(tmpDir, "artifact.xpi")
	sigPath := filepath.Join(tmpDir, "artifact.xpi.asc")
	if err := os.WriteFile(filePath, []byte("content"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sigPath, []byte("-----BEGIN PGP SIGNATURE-----\n...\n"), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.VerifyDetached(filePath, sigPath)
	if err == nil {
		t.Fatal("Expected error for empty keyring, got nil")
	}
	if !strings.Contains(err.Error(), "no GPG keys imported") {
		t.Errorf("Expected 'no GPG keys imported' error, got: %v", err)
	}
}

// Test that a tiny signature file is rejected before verification
func TestVerifier_VerifyDetached_TruncatedSignature(t *testing.T) {
	v := NewVerifier()
	// Fake a non-empty keyring to get past the import gate
	v.keyring = append(v.keyring, nil)

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "artifact.xpi")
	sigPath := filepath.Join(tmpDir, "artifact.xpi.asc")
	if err := os.WriteFile(filePath, []byte("content"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sigPath, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.VerifyDetached(filePath, sigPath)
	if err == nil {
		t.Fatal("Expected error for truncated signature, got nil")
	}
	if !strings.Contains(err.Error(), "too small") {
		t.Errorf("Expected 'too small' error, got: %v", err)
	}
}

// Test VerifyArtifact pass-through behavior
func TestVerifier_VerifyArtifact_Skips(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "artifact.xpi")
	if err := os.WriteFile(filePath, []byte("content"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Run("empty keyring passes", func(t *testing.T) {
		v := NewVerifier()
		if err := v.VerifyArtifact(filePath); err != nil {
			t.Errorf("VerifyArtifact() error = %v, want nil for empty keyring", err)
		}
	})

	t.Run("absent signature passes", func(t *testing.T) {
		v := NewVerifier()
		v.keyring = append(v.keyring, nil)
		if err := v.VerifyArtifact(filePath); err != nil {
			t.Errorf("VerifyArtifact() error = %v, want nil when no .asc exists", err)
		}
	})

	t.Run("present signature is checked", func(t *testing.T) {
		v := NewVerifier()
		v.keyring = append(v.keyring, nil)
		if err := os.WriteFile(filePath+".asc", []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := v.VerifyArtifact(filePath); err == nil {
			t.Error("VerifyArtifact() should fail when a bad .asc is present")
		}
	})
}

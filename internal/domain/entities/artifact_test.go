package entities

import (
	"errors"
	"strings"
	"testing"
)

// TestArtifactCanBeSigned tests the structural eligibility gate
func TestArtifactCanBeSigned(t *testing.T) {
	tests := []struct {
		name     string
		artifact Artifact
		want     bool
	}{
		{
			name:     "unsigned xpi",
			artifact: Artifact{Format: FormatXPI},
			want:     true,
		},
		{
			name:     "already signed xpi",
			artifact: Artifact{Format: FormatXPI, CertSerial: "123456"},
			want:     false,
		},
		{
			name:     "non-archive format",
			artifact: Artifact{Format: "search-plugin"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.artifact.CanBeSigned(); got != tt.want {
				t.Errorf("CanBeSigned() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestVersionAddonID tests the identity submitted to the authority
func TestVersionAddonID(t *testing.T) {
	v := Version{AddonSlug: "my-addon", Number: "1.2.0"}

	if got := v.AddonID(); got != "my-addon-1.2.0" {
		t.Errorf("AddonID() = %s, want my-addon-1.2.0", got)
	}
}

// TestVersionSignableArtifacts tests eligibility filtering
func TestVersionSignableArtifacts(t *testing.T) {
	v := Version{
		Artifacts: []*Artifact{
			{ID: "a", Format: FormatXPI},
			{ID: "b", Format: "search-plugin"},
			{ID: "c", Format: FormatXPI, CertSerial: "42"},
			{ID: "d", Format: FormatXPI},
		},
	}

	eligible := v.SignableArtifacts()
	if len(eligible) != 2 {
		t.Fatalf("SignableArtifacts() returned %d artifacts, want 2", len(eligible))
	}
	if eligible[0].ID != "a" || eligible[1].ID != "d" {
		t.Errorf("SignableArtifacts() = [%s %s], want [a d]", eligible[0].ID, eligible[1].ID)
	}
}

// TestSigningErrorUnwrap tests error wrapping behavior
func TestSigningErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSigningError("posting to add-on signing failed", cause)

	if !errors.Is(err, cause) {
		t.Error("SigningError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want it to contain the cause", err.Error())
	}

	bare := NewSigningError("no files", nil)
	if bare.Error() != "no files" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "no files")
	}
}

// TestArchiveExtractionErrorUnwrap tests the extraction error type
func TestArchiveExtractionErrorUnwrap(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := &ArchiveExtractionError{Path: "/tmp/bad.xpi", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ArchiveExtractionError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "/tmp/bad.xpi") {
		t.Errorf("Error() = %q, want it to contain the path", err.Error())
	}
}

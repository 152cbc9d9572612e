package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/waxseal/internal/domain/entities"
)

// yamlVersion represents the raw version record structure
type yamlVersion struct {
	ID        string         `yaml:"id"`
	AddonSlug string         `yaml:"addon_slug"`
	Number    string         `yaml:"number"`
	Artifacts []yamlArtifact `yaml:"artifacts"`
}

type yamlArtifact struct {
	ID         string `yaml:"id"`
	Path       string `yaml:"path"`
	Filename   string `yaml:"filename"`
	Status     string `yaml:"status"`
	Format     string `yaml:"format"`
	CertSerial string `yaml:"cert_serial,omitempty"`
}

// ArtifactRepository implements repositories.ArtifactRepository using
// per-version YAML record files in a directory
type ArtifactRepository struct {
	recordsDir string

	mu sync.Mutex
	// artifact ID -> version ID, learned from loaded records
	artifactIndex map[string]string
}

// NewArtifactRepository creates a new YAML-backed artifact repository
func NewArtifactRepository(recordsDir string) *ArtifactRepository {
	return &ArtifactRepository{
		recordsDir:    recordsDir,
		artifactIndex: make(map[string]string),
	}
}

// GetVersion retrieves a version record with its artifacts
func (r *ArtifactRepository) GetVersion(_ context.Context, versionID string) (*entities.Version, error) {
	raw, err := r.readRecord(versionID)
	if err != nil {
		return nil, err
	}

	version := &entities.Version{
		ID:        raw.ID,
		AddonSlug: raw.AddonSlug,
		Number:    raw.Number,
		Artifacts: make([]*entities.Artifact, 0, len(raw.Artifacts)),
	}

	r.mu.Lock()
	for _, a := range raw.Artifacts {
		version.Artifacts = append(version.Artifacts, &entities.Artifact{
			ID:         a.ID,
			Path:       a.Path,
			Filename:   a.Filename,
			Status:     entities.TrustStatus(a.Status),
			Format:     a.Format,
			CertSerial: a.CertSerial,
		})
		r.artifactIndex[a.ID] = versionID
	}
	r.mu.Unlock()

	return version, nil
}

// UpdateCertSerial records the certificate serial number issued for an
// artifact and rewrites its version record file
func (r *ArtifactRepository) UpdateCertSerial(_ context.Context, artifactID, serial string) error {
	r.mu.Lock()
	versionID, ok := r.artifactIndex[artifactID]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown artifact: %s", artifactID)
	}

	raw, err := r.readRecord(versionID)
	if err != nil {
		return err
	}

	found := false
	for i := range raw.Artifacts {
		if raw.Artifacts[i].ID == artifactID {
			raw.Artifacts[i].CertSerial = serial
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("artifact %s not in version record %s", artifactID, versionID)
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal version record: %w", err)
	}
	if err := os.WriteFile(r.recordPath(versionID), data, 0600); err != nil {
		return fmt.Errorf("failed to write version record: %w", err)
	}
	return nil
}

func (r *ArtifactRepository) recordPath(versionID string) string {
	return filepath.Join(r.recordsDir, versionID+".yml")
}

func (r *ArtifactRepository) readRecord(versionID string) (*yamlVersion, error) {
	path := r.recordPath(versionID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("version record not found: %s", versionID)
	}

	//nolint:gosec // G304: record path is derived from the records directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read version record: %w", err)
	}

	var raw yamlVersion
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse version record: %w", err)
	}
	if raw.ID == "" {
		raw.ID = versionID
	}
	return &raw, nil
}

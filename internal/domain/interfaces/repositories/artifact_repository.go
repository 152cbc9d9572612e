// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/waxseal/internal/domain/entities"
)

// ArtifactRepository defines the interface for reading version records
// and persisting signing results
type ArtifactRepository interface {
	// GetVersion retrieves a version record with its artifacts
	GetVersion(ctx context.Context, versionID string) (*entities.Version, error)

	// UpdateCertSerial records the certificate serial number issued for
	// an artifact. Called only after the signed archive has been
	// committed to the artifact's canonical path.
	UpdateCertSerial(ctx context.Context, artifactID, serial string) error
}

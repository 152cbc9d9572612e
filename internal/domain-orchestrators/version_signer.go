package orchestrators

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/ochairo/waxseal/internal/domain/entities"
	"github.com/ochairo/waxseal/internal/domain/interfaces"
	"github.com/ochairo/waxseal/internal/domain/interfaces/repositories"
)

// FileSigner signs a single artifact of a version
type FileSigner interface {
	SignFile(ctx context.Context, version *entities.Version, artifact *entities.Artifact) (string, error)
}

// VersionSigner signs every eligible artifact of a version. It runs off
// the request path, dispatched as one asynchronous unit of work.
type VersionSigner struct {
	repo   repositories.ArtifactRepository
	signer FileSigner
	logger interfaces.Logger
}

// NewVersionSigner creates a new version signer
func NewVersionSigner(repo repositories.ArtifactRepository, signer FileSigner, logger interfaces.Logger) *VersionSigner {
	return &VersionSigner{
		repo:   repo,
		signer: signer,
		logger: logger,
	}
}

// SignVersion signs all eligible artifacts of the version. One
// artifact's failure does not stop the others; failures are collected
// and returned as a single aggregate after all attempts complete.
func (s *VersionSigner) SignVersion(ctx context.Context, versionID string) error {
	version, err := s.repo.GetVersion(ctx, versionID)
	if err != nil {
		return entities.NewSigningError(
			fmt.Sprintf("failed to load version %s", versionID), err)
	}

	if len(version.Artifacts) == 0 {
		s.logger.Error("attempt to sign version with no files", interfaces.F("version", version.ID))
		return entities.NewSigningError("no files", nil)
	}

	s.logger.Info("signing version", interfaces.F("version", version.ID))

	var failures *multierror.Error
	for _, artifact := range version.SignableArtifacts() {
		if _, err := s.signer.SignFile(ctx, version, artifact); err != nil {
			s.logger.Error("signing failed",
				interfaces.F("version", version.ID),
				interfaces.F("artifact", artifact.ID),
				interfaces.F("error", err))
			failures = multierror.Append(failures, fmt.Errorf("artifact %s: %w", artifact.ID, err))
		}
	}

	if err := failures.ErrorOrNil(); err != nil {
		return entities.NewSigningError(
			fmt.Sprintf("signing version %s failed", version.ID), err)
	}
	return nil
}

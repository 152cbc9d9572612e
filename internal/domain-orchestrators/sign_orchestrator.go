// Package orchestrators coordinates the signing workflow across domain
// services and gateways.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ochairo/waxseal/internal/domain/entities"
	"github.com/ochairo/waxseal/internal/domain/interfaces"
	"github.com/ochairo/waxseal/internal/domain/interfaces/gateways"
	"github.com/ochairo/waxseal/internal/domain/interfaces/repositories"
	"github.com/ochairo/waxseal/internal/domain/services"
)

// UpstreamVerifier checks developer-supplied signatures over an artifact
// before it is submitted for signing. Implementations must treat an
// absent signature as a pass.
type UpstreamVerifier interface {
	VerifyArtifact(path string) error
}

// SignOrchestratorConfig holds configuration for the orchestrator
type SignOrchestratorConfig struct {
	// TempDir is where per-attempt working copies are written. Each
	// attempt derives a unique file name inside it, so concurrent or
	// retried attempts on the same artifact never collide.
	TempDir string
}

// SignOrchestrator sequences one artifact's signing: manifest
// extraction, submission to the authority, certificate embedding, and
// the atomic replacement of the artifact's canonical file.
type SignOrchestrator struct {
	resolver  *services.EndpointResolver
	extractor gateways.Extractor
	client    gateways.SigningGateway
	parser    gateways.CertificateParser
	storage   gateways.Storage
	repo      repositories.ArtifactRepository
	upstream  UpstreamVerifier
	logger    interfaces.Logger
	tempDir   string
}

// NewSignOrchestrator creates a new sign orchestrator. upstream may be
// nil when no developer-signature verification is configured.
func NewSignOrchestrator(
	resolver *services.EndpointResolver,
	extractor gateways.Extractor,
	client gateways.SigningGateway,
	parser gateways.CertificateParser,
	storage gateways.Storage,
	repo repositories.ArtifactRepository,
	upstream UpstreamVerifier,
	logger interfaces.Logger,
	config SignOrchestratorConfig,
) *SignOrchestrator {
	return &SignOrchestrator{
		resolver:  resolver,
		extractor: extractor,
		client:    client,
		parser:    parser,
		storage:   storage,
		repo:      repo,
		upstream:  upstream,
		logger:    logger,
		tempDir:   config.TempDir,
	}
}

// SignFile signs one artifact and returns the certificate serial number.
// An absent endpoint (signing disabled) returns ("", nil) without
// touching the artifact. Every failure leaves the artifact's canonical
// file byte-identical to what it was before the call.
func (o *SignOrchestrator) SignFile(ctx context.Context, version *entities.Version, artifact *entities.Artifact) (string, error) {
	if !artifact.CanBeSigned() {
		return "", entities.NewSigningError(
			fmt.Sprintf("attempt to sign a non-signable file %s", artifact.ID), nil)
	}

	endpoint, ok := o.resolver.Resolve(artifact.Status)
	if !ok {
		o.logger.Warn("not signing: no active endpoint", interfaces.F("artifact", artifact.ID))
		return "", nil
	}

	if o.upstream != nil {
		if err := o.upstream.VerifyArtifact(artifact.Path); err != nil {
			return "", entities.NewSigningError(
				fmt.Sprintf("upstream signature verification failed for %s", artifact.ID), err)
		}
	}

	extraction, err := o.extractor.Extract(ctx, artifact.Path)
	if err != nil {
		o.logger.Error("archive extraction failed, bad archive?",
			interfaces.F("artifact", artifact.ID), interfaces.F("error", err))
		return "", entities.NewSigningError("archive extraction failed, bad archive?", err)
	}

	cert, err := o.client.Sign(ctx, endpoint, version.AddonID(), extraction.Signatures())
	if err != nil {
		return "", err
	}

	serial, err := o.parser.SerialNumber(cert)
	if err != nil {
		return "", entities.NewSigningError("add-on signing failed", err)
	}

	// The temp name is unique per attempt, not per artifact, so a retry
	// can never observe a stale working copy.
	tempPath := filepath.Join(o.tempDir, fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(artifact.Path)))
	committed := false
	defer func() {
		if !committed {
			//nolint:errcheck // Best effort cleanup of the working copy
			o.storage.Remove(tempPath)
		}
	}()

	if err := extraction.WriteSigned(cert, tempPath); err != nil {
		return "", entities.NewSigningError("add-on signing failed", err)
	}

	// Sole mutation of the canonical path, all-or-nothing
	if err := o.storage.Rename(tempPath, artifact.Path); err != nil {
		return "", entities.NewSigningError(
			fmt.Sprintf("failed to replace artifact %s", artifact.ID), err)
	}
	committed = true

	artifact.CertSerial = serial
	if err := o.repo.UpdateCertSerial(ctx, artifact.ID, serial); err != nil {
		return "", entities.NewSigningError(
			fmt.Sprintf("failed to record certificate serial for %s", artifact.ID), err)
	}

	o.logger.Info("signing complete",
		interfaces.F("artifact", artifact.ID), interfaces.F("serial", serial))
	return serial, nil
}

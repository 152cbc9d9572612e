// Package gateways defines interfaces for external capabilities consumed
// by the signing pipeline.
package gateways

import (
	"context"
	"time"

	"github.com/ochairo/waxseal/internal/domain/services"
)

// SigningGateway submits a signature manifest to a remote signing
// authority and returns the issued certificate chain as raw DER bytes.
// Implementations perform exactly one bounded-timeout network call and
// never return partial results.
type SigningGateway interface {
	Sign(ctx context.Context, endpoint services.Endpoint, addonID string, manifest []byte) ([]byte, error)
}

// Extractor computes the signature manifest of a package archive
type Extractor interface {
	// Extract reads the archive at path and computes its digest manifest.
	// It fails with *entities.ArchiveExtractionError if the archive is
	// malformed or cannot be read in full.
	Extract(ctx context.Context, path string) (Extraction, error)
}

// Extraction is the result of reading one archive: the computed manifest
// plus the ability to re-embed an issued certificate into a new copy of
// the archive. The source archive is never modified.
type Extraction interface {
	// Manifest returns the rendered digest manifest bytes
	Manifest() []byte

	// Signatures returns the signature-file bytes submitted to the
	// signing authority
	Signatures() []byte

	// WriteSigned writes a new archive at outPath containing the
	// certificate and signature entries followed by all original entries
	WriteSigned(cert []byte, outPath string) error
}

// CertificateParser derives the serial number from an issued
// certificate chain
type CertificateParser interface {
	SerialNumber(der []byte) (string, error)
}

// MetricsSink receives timing observations around signing calls.
// Fire-and-forget: implementations must never fail the pipeline.
type MetricsSink interface {
	ObserveSigningDuration(d time.Duration)
}

// Package gateways contains adapter implementations of the domain
// gateway interfaces.
package gateways

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ochairo/waxseal/internal/domain/entities"
	"github.com/ochairo/waxseal/internal/domain/interfaces"
	domaingateways "github.com/ochairo/waxseal/internal/domain/interfaces/gateways"
	"github.com/ochairo/waxseal/internal/domain/services"
)

// Response field and upload names fixed by the signing authority's API
const (
	certificateField  = "zigbert.rsa"
	signatureFilename = "zigbert.sf"
)

// HTTPSigningClient implements SigningGateway over the authority's
// multipart POST API. One call per Sign invocation, no internal retries;
// redelivery belongs to the task-dispatch layer.
type HTTPSigningClient struct {
	logger  interfaces.Logger
	metrics domaingateways.MetricsSink
}

// NewHTTPSigningClient creates a new signing client
func NewHTTPSigningClient(logger interfaces.Logger, metrics domaingateways.MetricsSink) *HTTPSigningClient {
	return &HTTPSigningClient{
		logger:  logger,
		metrics: metrics,
	}
}

// Sign submits the signature manifest to the endpoint and returns the
// issued certificate chain as raw DER bytes. Every non-success outcome
// is a *entities.SigningError; a corrupt certificate is never returned.
func (c *HTTPSigningClient) Sign(ctx context.Context, endpoint services.Endpoint, addonID string, manifest []byte) ([]byte, error) {
	body, contentType, err := encodeSigningRequest(addonID, manifest)
	if err != nil {
		return nil, entities.NewSigningError("building signing request failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, body)
	if err != nil {
		return nil, entities.NewSigningError("building signing request failed", err)
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Info("calling signing service", interfaces.F("endpoint", endpoint.URL), interfaces.F("addon_id", addonID))

	// The endpoint timeout is the hard upper bound on the whole call
	client := &http.Client{Timeout: endpoint.Timeout}

	start := time.Now()
	resp, err := client.Do(req)
	c.metrics.ObserveSigningDuration(time.Since(start))
	if err != nil {
		return nil, entities.NewSigningError("posting to add-on signing failed", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, entities.NewSigningError(
			fmt.Sprintf("posting to add-on signing failed: %s", http.StatusText(resp.StatusCode)), nil)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, entities.NewSigningError("malformed response from signing service", err)
	}

	encoded, ok := payload[certificateField]
	if !ok {
		return nil, entities.NewSigningError(
			fmt.Sprintf("signing service response missing %q", certificateField), nil)
	}

	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, entities.NewSigningError("signing service returned undecodable certificate", err)
	}

	return der, nil
}

// encodeSigningRequest builds the multipart form body: an addon_id field
// plus the manifest bytes as a file part named zigbert.sf.
func encodeSigningRequest(addonID string, manifest []byte) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField("addon_id", addonID); err != nil {
		return nil, "", fmt.Errorf("failed to write addon_id field: %w", err)
	}

	part, err := w.CreateFormFile("file", signatureFilename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(manifest); err != nil {
		return nil, "", fmt.Errorf("failed to write manifest part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}

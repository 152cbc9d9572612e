// Package services contains pure domain logic with no side effects.
package services

import (
	"fmt"
	"time"

	"github.com/ochairo/waxseal/internal/domain/entities"
)

// Endpoint is a resolved signing authority address plus the hard upper
// bound on how long a submission to it may take. Recomputed per artifact,
// never stored.
type Endpoint struct {
	URL     string
	Timeout time.Duration
}

// EndpointResolverConfig holds the configured signing servers. Empty
// server fields mean signing is administratively disabled for artifacts
// routed to them.
type EndpointResolverConfig struct {
	// Server signs fully reviewed (public) artifacts
	Server string

	// PreliminaryServer signs everything that is not public yet
	PreliminaryServer string

	// Timeout bounds a single submission call
	Timeout time.Duration
}

// EndpointResolver chooses the signing endpoint for an artifact based on
// its trust status
type EndpointResolver struct {
	config EndpointResolverConfig
}

// NewEndpointResolver creates a new endpoint resolver
func NewEndpointResolver(config EndpointResolverConfig) *EndpointResolver {
	return &EndpointResolver{config: config}
}

// Resolve returns the endpoint for the given trust status. The second
// return value is false when no server is configured for that status,
// which means signing is disabled rather than failed.
func (r *EndpointResolver) Resolve(status entities.TrustStatus) (Endpoint, bool) {
	server := r.config.Server
	if status != entities.StatusPublic {
		server = r.config.PreliminaryServer
	}
	if server == "" {
		return Endpoint{}, false
	}

	return Endpoint{
		URL:     fmt.Sprintf("%s/1.0/sign_addon", server),
		Timeout: r.config.Timeout,
	}, true
}

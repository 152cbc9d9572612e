package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	adapters "github.com/ochairo/waxseal/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/waxseal/internal/domain-orchestrators"
	"github.com/ochairo/waxseal/internal/domain/interfaces"
	"github.com/ochairo/waxseal/internal/domain/services"
	"github.com/ochairo/waxseal/internal/external-adapters/gpg"
	"github.com/ochairo/waxseal/internal/external-adapters/jar"
	logrusadapter "github.com/ochairo/waxseal/internal/external-adapters/logrus"
	"github.com/ochairo/waxseal/internal/external-adapters/pkcs7"
	"github.com/ochairo/waxseal/internal/external-adapters/yaml"
)

// pipeline bundles the wired signing stack for the CLI commands
type pipeline struct {
	config   *yaml.Config
	repo     *yaml.ArtifactRepository
	signer   *orchestrators.SignOrchestrator
	versions *orchestrators.VersionSigner
	logger   interfaces.Logger
	registry *prometheus.Registry
}

// buildPipeline wires the signing stack from a config file and a version
// records directory
func buildPipeline(configPath, recordsDir string) (*pipeline, error) {
	config, err := yaml.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logrusadapter.NewLogger()
	registry := prometheus.NewRegistry()
	metrics := adapters.NewPrometheusMetrics(registry)

	resolver := services.NewEndpointResolver(services.EndpointResolverConfig{
		Server:            config.Server,
		PreliminaryServer: config.PreliminaryServer,
		Timeout:           config.Timeout,
	})

	var upstream orchestrators.UpstreamVerifier
	if config.Keyring != "" {
		verifier := gpg.NewVerifier()
		if err := verifier.ImportKeyFromFile(config.Keyring); err != nil {
			return nil, fmt.Errorf("failed to load keyring: %w", err)
		}
		upstream = verifier
	}

	repo := yaml.NewArtifactRepository(recordsDir)

	signer := orchestrators.NewSignOrchestrator(
		resolver,
		jar.NewExtractor(),
		adapters.NewHTTPSigningClient(logger, metrics),
		pkcs7.NewParser(),
		adapters.NewLocalStorage(),
		repo,
		upstream,
		logger,
		orchestrators.SignOrchestratorConfig{TempDir: config.TempDir},
	)

	return &pipeline{
		config:   config,
		repo:     repo,
		signer:   signer,
		versions: orchestrators.NewVersionSigner(repo, signer, logger),
		logger:   logger,
		registry: registry,
	}, nil
}

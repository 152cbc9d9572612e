package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ochairo/waxseal/internal/domain-adapters/dispatch"
	"github.com/ochairo/waxseal/internal/domain/interfaces"
)

func runSignVersion(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("sign-version", flag.ExitOnError)
	var (
		configPath  = fs.String("config", "signing.yml", "Path to signing config file")
		recordsDir  = fs.String("records-dir", "records", "Path to version records directory")
		metricsAddr = fs.String("metrics-addr", "", "Optional address to expose prometheus metrics on while signing")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: waxseal sign-version <version-id> [version-id...] [options]

Sign every eligible artifact of one or more versions. Each version is
dispatched as an independent background task with at-least-once
redelivery on failure.

Examples:
  waxseal sign-version my-addon-1.2.0
  waxseal sign-version my-addon-1.2.0 other-addon-0.9 --metrics-addr :9090

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one version ID is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	if err := executeSignVersion(ctx, *configPath, *recordsDir, *metricsAddr, fs.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeSignVersion(ctx context.Context, configPath, recordsDir, metricsAddr string, versionIDs []string) error {
	p, err := buildPipeline(configPath, recordsDir)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil { //nolint:gosec // G114: short-lived CLI endpoint
				p.logger.Warn("metrics endpoint stopped", interfaces.F("error", err))
			}
		}()
	}

	dispatcher := dispatch.NewDispatcher(p.versions, p.logger, p.config.MaxRedeliveries)
	for _, versionID := range versionIDs {
		dispatcher.Enqueue(ctx, versionID)
	}
	dispatcher.Wait()

	fmt.Printf("Dispatched signing for %d version(s); see log for per-artifact results\n", len(versionIDs))
	return nil
}

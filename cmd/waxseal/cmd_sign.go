package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runSign(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	var (
		configPath = fs.String("config", "signing.yml", "Path to signing config file")
		recordsDir = fs.String("records-dir", "records", "Path to version records directory")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: waxseal sign <version-id> <artifact-id> [options]

Sign a single artifact: extract its signature manifest, submit it to the
signing authority, embed the issued certificate, and atomically replace
the artifact file.

Examples:
  waxseal sign my-addon-1.2.0 file-1
  waxseal sign my-addon-1.2.0 file-1 --config /etc/waxseal/signing.yml

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: version ID and artifact ID are required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	versionID := fs.Arg(0)
	artifactID := fs.Arg(1)

	if err := executeSign(ctx, *configPath, *recordsDir, versionID, artifactID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeSign(ctx context.Context, configPath, recordsDir, versionID, artifactID string) error {
	p, err := buildPipeline(configPath, recordsDir)
	if err != nil {
		return err
	}

	version, err := p.repo.GetVersion(ctx, versionID)
	if err != nil {
		return err
	}

	for _, artifact := range version.Artifacts {
		if artifact.ID != artifactID {
			continue
		}
		serial, err := p.signer.SignFile(ctx, version, artifact)
		if err != nil {
			return err
		}
		if serial == "" {
			fmt.Println("Signing is disabled: no endpoint configured for this artifact")
			return nil
		}
		fmt.Printf("Signed %s (serial %s)\n", artifact.Filename, serial)
		return nil
	}

	return fmt.Errorf("artifact %s not found in version %s", artifactID, versionID)
}

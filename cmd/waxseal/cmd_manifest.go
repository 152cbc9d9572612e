package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/waxseal/internal/external-adapters/jar"
)

func runManifest(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("manifest", flag.ExitOnError)
	var (
		showSignatures = fs.Bool("signatures", false, "Print the signature file submitted for signing instead of the manifest")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: waxseal manifest <archive> [options]

Compute and print the signature manifest of a package archive without
contacting the signing authority. Pre-existing signature sections are
omitted from the computation.

Examples:
  waxseal manifest my-addon.xpi
  waxseal manifest my-addon.xpi --signatures

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: archive path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	extraction, err := jar.NewExtractor().Extract(ctx, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *showSignatures {
		os.Stdout.Write(extraction.Signatures())
		return
	}
	os.Stdout.Write(extraction.Manifest())
}

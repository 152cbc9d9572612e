package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/waxseal/internal/domain-adapters/gateways"
	"github.com/ochairo/waxseal/internal/external-adapters/jar"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		checksum = fs.String("checksum", "", "Expected SHA256 checksum (hex) to verify against")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: waxseal verify <archive> [options]

Verify a signed archive: the certificate entry must be present and the
embedded manifest must match a fresh digest computation over the
archive's entries.

Examples:
  waxseal verify my-addon.xpi
  waxseal verify my-addon.xpi --checksum 3f4e...

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

	if err := executeVerify(ctx, fs.Arg(0), *checksum); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeVerify(ctx context.Context, archivePath, checksum string) error {
	if checksum != "" {
		storage := gateways.NewLocalStorage()
		actual, err := storage.CalculateChecksum(archivePath)
		if err != nil {
			return err
		}
		if actual != checksum {
			return fmt.Errorf("checksum mismatch: expected %s, got %s", checksum, actual)
		}
		fmt.Println("Checksum OK")
	}

	if err := jar.NewExtractor().VerifySigned(ctx, archivePath); err != nil {
		return err
	}

	fmt.Println("Signature manifest OK")
	return nil
}

// Package main provides the waxseal CLI for signing add-on packages.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "sign":
		runSign(ctx, os.Args[2:])
	case "sign-version":
		runSignVersion(ctx, os.Args[2:])
	case "manifest":
		runManifest(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`waxseal - add-on package signing pipeline

Usage:
  waxseal <command> [options]

Commands:
  sign          Sign a single artifact of a version
  sign-version  Sign every eligible artifact of a version
  manifest      Print the signature manifest computed from an archive
  verify        Verify the embedded manifest of a signed archive

Use "waxseal <command> --help" for more information about a command.`)
}

// Package gpg provides GPG signature verification capabilities.
package gpg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signature files larger than this are rejected outright; GPG signatures
// are typically well under 1KB.
const maxSignatureSize = 10 * 1024

// Verifier checks developer-supplied detached signatures over artifacts
// before they are submitted for signing, using ProtonMail's go-crypto
// (a maintained, modern fork of golang.org/x/crypto/openpgp).
// This is in external-adapters to isolate the external dependency.
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a new GPG verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyFromFile imports a GPG key from a file, armored or binary
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is operator-configured for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Try reading as binary
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifyDetached verifies a detached GPG signature file over the
// artifact at filePath
func (v *Verifier) VerifyDetached(filePath, sigPath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, call ImportKeyFromFile first")
	}

	//nolint:gosec // G304: sigPath sits next to the artifact it covers
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sigFile.Close()

	sigData, err := io.ReadAll(io.LimitReader(sigFile, maxSignatureSize))
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}
	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be valid GPG signature")
	}

	//nolint:gosec // G304: filePath comes from version records
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	// Armored signatures start with -----BEGIN PGP SIGNATURE-----
	isArmored := len(sigData) > 27 && string(sigData[:27]) == "-----BEGIN PGP SIGNATURE---"

	var verifyErr error
	if isArmored {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(v.keyring, f, bytes.NewReader(sigData), nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(v.keyring, f, bytes.NewReader(sigData), nil)
	}

	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}

// VerifyArtifact verifies the detached signature sitting next to the
// artifact (path + ".asc") when one exists. An absent signature or an
// empty keyring is a pass: upstream verification is opt-in per artifact.
func (v *Verifier) VerifyArtifact(path string) error {
	if len(v.keyring) == 0 {
		return nil
	}

	sigPath := path + ".asc"
	if _, err := os.Stat(sigPath); os.IsNotExist(err) {
		return nil
	}

	return v.VerifyDetached(path, sigPath)
}

// KeyringSize returns the number of keys in the keyring
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}

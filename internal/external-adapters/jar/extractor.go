// Package jar computes JAR-style signature manifests over zip archives
// and re-embeds issued certificates into signed copies.
package jar

import (
	"archive/zip"
	"bytes"
	"context"
	//nolint:gosec // G501: MD5 digests are required by the JAR signing format
	"crypto/md5"
	//nolint:gosec // G505: SHA1 digests are required by the JAR signing format
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/waxseal/internal/domain/entities"
	"github.com/ochairo/waxseal/internal/domain/interfaces/gateways"
)

// Signature entry names written into the signed archive
const (
	manifestEntryName  = "META-INF/manifest.mf"
	signatureEntryName = "META-INF/zigbert.sf"
	certEntryName      = "META-INF/zigbert.rsa"
)

// Extractor implements the archive signature extraction gateway for
// zip-based add-on packages (XPI)
type Extractor struct{}

// NewExtractor creates a new archive signature extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the whole archive at path and computes its signature
// manifest. Pre-existing signature sections are omitted from the
// computation, so re-signing a structurally identical archive is
// deterministic.
func (e *Extractor) Extract(_ context.Context, path string) (gateways.Extraction, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, &entities.ArchiveExtractionError{Path: path, Err: err}
	}
	//nolint:errcheck // Defer close on read-only archive
	defer reader.Close()

	manifest := &bytes.Buffer{}
	manifest.WriteString("Manifest-Version: 1.0\n")

	for _, f := range reader.File {
		if f.FileInfo().IsDir() || isSignatureSection(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, &entities.ArchiveExtractionError{Path: path, Err: err}
		}
		content, err := io.ReadAll(rc)
		//nolint:errcheck // Best effort close after full read
		rc.Close()
		if err != nil {
			return nil, &entities.ArchiveExtractionError{Path: path, Err: fmt.Errorf("reading %s: %w", f.Name, err)}
		}

		md5Sum := md5.Sum(content)  //nolint:gosec // G401: format-mandated digest
		sha1Sum := sha1.Sum(content) //nolint:gosec // G401: format-mandated digest

		fmt.Fprintf(manifest, "\nName: %s\n", f.Name)
		manifest.WriteString("Digest-Algorithms: MD5 SHA1\n")
		fmt.Fprintf(manifest, "MD5-Digest: %s\n", base64.StdEncoding.EncodeToString(md5Sum[:]))
		fmt.Fprintf(manifest, "SHA1-Digest: %s\n", base64.StdEncoding.EncodeToString(sha1Sum[:]))
	}

	manifestBytes := manifest.Bytes()

	return &Extraction{
		path:       path,
		manifest:   manifestBytes,
		signatures: renderSignatureFile(manifestBytes),
	}, nil
}

// Extraction holds the computed manifest of one archive and can write a
// signed copy of it. The source archive is never modified.
type Extraction struct {
	path       string
	manifest   []byte
	signatures []byte
}

// Manifest returns the rendered digest manifest bytes
func (x *Extraction) Manifest() []byte {
	return x.manifest
}

// Signatures returns the signature-file bytes submitted for signing
func (x *Extraction) Signatures() []byte {
	return x.signatures
}

// WriteSigned writes a new archive at outPath: the signature block
// (certificate, signature file, manifest) followed by every original
// entry except stale signature sections.
func (x *Extraction) WriteSigned(cert []byte, outPath string) error {
	reader, err := zip.OpenReader(x.path)
	if err != nil {
		return &entities.ArchiveExtractionError{Path: x.path, Err: err}
	}
	//nolint:errcheck // Defer close on read-only archive
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(outPath), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	//nolint:gosec // G304: outPath is a pipeline-generated temporary path
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create signed archive: %w", err)
	}
	//nolint:errcheck // Defer close
	defer out.Close()

	zw := zip.NewWriter(out)

	// Signature block first, the way JAR signing tools order entries
	signatureEntries := []struct {
		name    string
		content []byte
	}{
		{certEntryName, cert},
		{signatureEntryName, x.signatures},
		{manifestEntryName, x.manifest},
	}
	for _, entry := range signatureEntries {
		w, err := zw.Create(entry.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", entry.name, err)
		}
		if _, err := w.Write(entry.content); err != nil {
			return fmt.Errorf("failed to write %s: %w", entry.name, err)
		}
	}

	// Copy the original entries untouched
	for _, f := range reader.File {
		if isSignatureSection(f.Name) {
			continue
		}

		header := f.FileHeader
		w, err := zw.CreateHeader(&header)
		if err != nil {
			return fmt.Errorf("failed to copy header %s: %w", f.Name, err)
		}
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open entry %s: %w", f.Name, err)
		}
		_, err = io.Copy(w, rc)
		//nolint:errcheck // Best effort close after copy
		rc.Close()
		if err != nil {
			return fmt.Errorf("failed to copy entry %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize signed archive: %w", err)
	}
	return nil
}

// renderSignatureFile renders the signature file submitted to the
// authority: digests over the manifest bytes themselves.
func renderSignatureFile(manifest []byte) []byte {
	md5Sum := md5.Sum(manifest)  //nolint:gosec // G401: format-mandated digest
	sha1Sum := sha1.Sum(manifest) //nolint:gosec // G401: format-mandated digest

	buf := &bytes.Buffer{}
	buf.WriteString("Signature-Version: 1.0\n")
	fmt.Fprintf(buf, "MD5-Digest-Manifest: %s\n", base64.StdEncoding.EncodeToString(md5Sum[:]))
	fmt.Fprintf(buf, "SHA1-Digest-Manifest: %s\n", base64.StdEncoding.EncodeToString(sha1Sum[:]))
	return buf.Bytes()
}

// isSignatureSection reports whether a zip entry is part of an existing
// signature block (META-INF manifest, signature, or certificate files)
func isSignatureSection(name string) bool {
	upper := strings.ToUpper(name)
	if !strings.HasPrefix(upper, "META-INF/") {
		return false
	}
	switch {
	case strings.HasSuffix(upper, ".MF"),
		strings.HasSuffix(upper, ".SF"),
		strings.HasSuffix(upper, ".RSA"),
		strings.HasSuffix(upper, ".DSA"):
		return true
	default:
		return false
	}
}

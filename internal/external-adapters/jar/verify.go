package jar

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
)

// VerifySigned checks a signed archive: the certificate entry must be
// present and the embedded manifest must match a fresh digest
// computation over the archive's entries. A mismatch means entries were
// altered after signing.
func (e *Extractor) VerifySigned(ctx context.Context, path string) error {
	embedded, err := readEntry(path, manifestEntryName)
	if err != nil {
		return fmt.Errorf("archive has no embedded manifest: %w", err)
	}
	if _, err := readEntry(path, certEntryName); err != nil {
		return fmt.Errorf("archive has no certificate entry: %w", err)
	}

	extraction, err := e.Extract(ctx, path)
	if err != nil {
		return err
	}

	if !bytes.Equal(embedded, extraction.Manifest()) {
		return fmt.Errorf("manifest digest mismatch: archive entries were modified after signing")
	}
	return nil
}

// readEntry returns the content of one named zip entry
func readEntry(path, name string) ([]byte, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer reader.Close()

	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open entry %s: %w", name, err)
		}
		content, err := io.ReadAll(rc)
		//nolint:errcheck // Best effort close after full read
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", name, err)
		}
		return content, nil
	}

	return nil, fmt.Errorf("entry %s not found", name)
}

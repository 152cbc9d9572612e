package orchestrators

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ochairo/waxseal/internal/domain/entities"
	"github.com/ochairo/waxseal/internal/domain/interfaces/gateways"
	"github.com/ochairo/waxseal/internal/domain/services"
)

// fakeExtraction returns fixed manifest bytes and writes fixed signed
// bytes, so orchestrator tests need no real archives
type fakeExtraction struct {
	manifest   []byte
	signatures []byte
	signed     []byte
	writeErr   error
}

func (f *fakeExtraction) Manifest() []byte   { return f.manifest }
func (f *fakeExtraction) Signatures() []byte { return f.signatures }

func (f *fakeExtraction) WriteSigned(cert []byte, outPath string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	content := append(append([]byte{}, f.signed...), cert...)
	if err := os.MkdirAll(filepath.Dir(outPath), 0750); err != nil {
		return err
	}
	return os.WriteFile(outPath, content, 0600)
}

type fakeExtractor struct {
	extraction *fakeExtraction
	err        error
	calls      int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (gateways.Extraction, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.extraction, nil
}

type fakeSigningClient struct {
	cert []byte
	err  error

	calls       int
	gotEndpoint services.Endpoint
	gotAddonID  string
	gotManifest []byte
}

func (f *fakeSigningClient) Sign(_ context.Context, endpoint services.Endpoint, addonID string, manifest []byte) ([]byte, error) {
	f.calls++
	f.gotEndpoint = endpoint
	f.gotAddonID = addonID
	f.gotManifest = manifest
	if f.err != nil {
		return nil, f.err
	}
	return f.cert, nil
}

type fakeCertParser struct {
	serial string
	err    error
}

func (f *fakeCertParser) SerialNumber(_ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.serial, nil
}

type fakeRepository struct {
	versions  map[string]*entities.Version
	getErr    error
	updated   map[string]string
	updateErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		versions: make(map[string]*entities.Version),
		updated:  make(map[string]string),
	}
}

func (f *fakeRepository) GetVersion(_ context.Context, versionID string) (*entities.Version, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.versions[versionID]
	if !ok {
		return nil, os.ErrNotExist
	}
	return v, nil
}

func (f *fakeRepository) UpdateCertSerial(_ context.Context, artifactID, serial string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[artifactID] = serial
	return nil
}

// fakeFileSigner records invocation order for version signer tests
type fakeFileSigner struct {
	errs  map[string]error
	calls []string
}

func (f *fakeFileSigner) SignFile(_ context.Context, _ *entities.Version, artifact *entities.Artifact) (string, error) {
	f.calls = append(f.calls, artifact.ID)
	if err, ok := f.errs[artifact.ID]; ok {
		return "", err
	}
	return "1", nil
}

// Package entities defines core domain models and data structures.
package entities

import "fmt"

// TrustStatus is the review state of an artifact. It decides which
// signing endpoint the artifact is routed to.
type TrustStatus string

// Review states an artifact moves through before distribution
const (
	StatusUnreviewed  TrustStatus = "unreviewed"
	StatusPreliminary TrustStatus = "preliminary"
	StatusPublic      TrustStatus = "public"
)

// Artifact formats this pipeline knows about. Only XPI archives are signable.
const (
	FormatXPI = "xpi"
)

// Artifact represents a distributable add-on package file owned by a Version
type Artifact struct {
	ID         string
	Path       string
	Filename   string
	Status     TrustStatus
	Format     string // "xpi", "search-plugin", etc.
	CertSerial string // set exactly once, by a successful sign operation
}

// CanBeSigned reports whether the artifact is structurally eligible for
// signing: it must be an XPI archive and must not carry a certificate
// serial number already. A set serial means the binary content was
// replaced by a previous sign operation and must not be touched again.
func (a *Artifact) CanBeSigned() bool {
	return a.Format == FormatXPI && a.CertSerial == ""
}

// Version is a release unit owning the artifacts built for it
type Version struct {
	ID        string
	AddonSlug string
	Number    string
	Artifacts []*Artifact
}

// AddonID returns the stable human-readable identity the signing
// authority keys certificate issuance on. It is derived from the add-on
// slug and version number, never from mutable record IDs.
func (v *Version) AddonID() string {
	return fmt.Sprintf("%s-%s", v.AddonSlug, v.Number)
}

// SignableArtifacts returns the artifacts of this version that are
// structurally eligible for signing, in record order.
func (v *Version) SignableArtifacts() []*Artifact {
	eligible := make([]*Artifact, 0, len(v.Artifacts))
	for _, a := range v.Artifacts {
		if a.CanBeSigned() {
			eligible = append(eligible, a)
		}
	}
	return eligible
}

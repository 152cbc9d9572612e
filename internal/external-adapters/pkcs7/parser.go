// Package pkcs7 extracts certificate details from PKCS#7 signature
// blocks issued by the signing authority.
package pkcs7

import (
	"fmt"

	"github.com/digitorus/pkcs7"
)

// Parser implements the CertificateParser gateway over DER-encoded
// PKCS#7 signed data
type Parser struct{}

// NewParser creates a new PKCS#7 certificate parser
func NewParser() *Parser {
	return &Parser{}
}

// SerialNumber returns the decimal serial number of the signer
// certificate inside the PKCS#7 block
func (p *Parser) SerialNumber(der []byte) (string, error) {
	block, err := pkcs7.Parse(der)
	if err != nil {
		return "", fmt.Errorf("failed to parse PKCS#7 data: %w", err)
	}

	signer := block.GetOnlySigner()
	if signer == nil {
		return "", fmt.Errorf("PKCS#7 data has no single signer certificate")
	}

	return signer.SerialNumber.String(), nil
}

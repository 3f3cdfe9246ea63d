package pcodedmp

import (
	"fmt"
	"reflect"
	"time"

	"go.mozilla.org/pkcs7"
)

// SignatureInfo wraps the fields of a project's _VBA_PROJECT_SIGNATURE
// stream that are worth surfacing to an analyst, mirroring the subset of
// fields the teacher's CertInfo keeps out of a full pkcs7.PKCS7 structure.
type SignatureInfo struct {
	Issuer       string
	Subject      string
	SerialNumber string
	NotBefore    time.Time
	NotAfter     time.Time
}

// Summary renders a one-line description of the signing certificate,
// suitable for the project report's signature line.
func (s SignatureInfo) Summary() string {
	return fmt.Sprintf("%s, signed %s..%s", s.Subject, s.NotBefore.Format("2006-01-02"), s.NotAfter.Format("2006-01-02"))
}

// parseSignature decodes a _VBA_PROJECT_SIGNATURE (or _VBA_PROJECT_SIGNATURE_AGILE)
// stream as a PKCS#7 SignedData blob and extracts the signing certificate
// matching the first signer's serial number.
func parseSignature(raw []byte) (SignatureInfo, error) {
	p, err := pkcs7.Parse(raw)
	if err != nil {
		return SignatureInfo{}, err
	}
	if len(p.Signers) == 0 {
		return SignatureInfo{}, ErrInvalidSignature
	}
	serialNumber := p.Signers[0].IssuerAndSerialNumber.SerialNumber

	var info SignatureInfo
	for _, cert := range p.Certificates {
		if !reflect.DeepEqual(cert.SerialNumber, serialNumber) {
			continue
		}
		info.SerialNumber = cert.SerialNumber.String()
		info.NotBefore = cert.NotBefore
		info.NotAfter = cert.NotAfter
		if len(cert.Issuer.Organization) > 0 {
			info.Issuer = cert.Issuer.Organization[0]
		} else {
			info.Issuer = cert.Issuer.CommonName
		}
		if len(cert.Subject.Organization) > 0 {
			info.Subject = cert.Subject.Organization[0]
		} else {
			info.Subject = cert.Subject.CommonName
		}
		return info, nil
	}
	return SignatureInfo{}, ErrInvalidSignature
}

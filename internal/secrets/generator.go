// Package secrets derives tag identities. Everything here must come from a
// cryptographically secure source: a predictable generator would let an
// attacker forge valid-looking tags.
package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
)

const (
	certIDHexLen = 12
	serialBytes  = 6
)

// GenerateBundle returns a fresh SecretBundle for the given batch. The cert ID
// is the first 12 uppercase hex chars of SHA-256 over 16 random bytes,
// prefixed with CERT-<batch>-. Guilloche key, border key, and serial number
// are each drawn independently; no field is derivable from another.
func GenerateBundle(batchCode string) (domain.SecretBundle, error) {
	var bundle domain.SecretBundle

	var certRandom [16]byte
	if _, err := rand.Read(certRandom[:]); err != nil {
		return bundle, fmt.Errorf("read cert randomness: %w", err)
	}
	digest := sha256.Sum256(certRandom[:])
	certHex := strings.ToUpper(hex.EncodeToString(digest[:]))[:certIDHexLen]
	bundle.CertID = fmt.Sprintf("CERT-%s-%s", batchCode, certHex)

	if _, err := rand.Read(bundle.GuillocheKey[:]); err != nil {
		return bundle, fmt.Errorf("read guilloche key: %w", err)
	}
	if _, err := rand.Read(bundle.BorderKey[:]); err != nil {
		return bundle, fmt.Errorf("read border key: %w", err)
	}

	var serialRandom [serialBytes]byte
	if _, err := rand.Read(serialRandom[:]); err != nil {
		return bundle, fmt.Errorf("read serial randomness: %w", err)
	}
	bundle.SerialNumber = "SK-" + strings.ToUpper(hex.EncodeToString(serialRandom[:]))

	return bundle, nil
}

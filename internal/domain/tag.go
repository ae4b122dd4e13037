package domain

import (
	"encoding/hex"
	"time"
)

// SecretBundle is the cryptographic identity of one physical tag. All four
// fields are drawn from independent randomness: knowing the printed cert ID
// gives no information about the pattern keys. Created once at issuance and
// never regenerated for the same tag.
type SecretBundle struct {
	CertID       string
	GuillocheKey [16]byte
	BorderKey    [16]byte
	SerialNumber string
}

// RegistryRecord is the registry's view of one issued bundle. Keyed by cert
// ID, written once, read-only afterward. Authentic is always true for records
// written by the issuer; it exists so downstream consumers never have to infer
// provenance from absence.
type RegistryRecord struct {
	CertID       string    `json:"cert_id"`
	BatchCode    string    `json:"batch_code"`
	GuillocheKey string    `json:"guilloche_key"`
	BorderKey    string    `json:"border_key"`
	SerialNumber string    `json:"serial_number"`
	CreatedAt    time.Time `json:"created_at"`
	Authentic    bool      `json:"authentic"`
}

// NewRegistryRecord builds the persisted form of a bundle. Keys are stored as
// hex so the tag image can be re-rendered from the registry alone.
func NewRegistryRecord(bundle SecretBundle, batchCode string, createdAt time.Time) RegistryRecord {
	return RegistryRecord{
		CertID:       bundle.CertID,
		BatchCode:    batchCode,
		GuillocheKey: hex.EncodeToString(bundle.GuillocheKey[:]),
		BorderKey:    hex.EncodeToString(bundle.BorderKey[:]),
		SerialNumber: bundle.SerialNumber,
		CreatedAt:    createdAt,
		Authentic:    true,
	}
}

// Bundle reconstructs the secret bundle from a persisted record.
func (r RegistryRecord) Bundle() (SecretBundle, error) {
	var bundle SecretBundle
	bundle.CertID = r.CertID
	bundle.SerialNumber = r.SerialNumber

	gk, err := hex.DecodeString(r.GuillocheKey)
	if err != nil {
		return SecretBundle{}, err
	}
	bk, err := hex.DecodeString(r.BorderKey)
	if err != nil {
		return SecretBundle{}, err
	}
	copy(bundle.GuillocheKey[:], gk)
	copy(bundle.BorderKey[:], bk)
	return bundle, nil
}

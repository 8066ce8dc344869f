// Package p8 parses App Store Connect API private keys (.p8 files).
package p8

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

var (
	ErrNoPEM      = errors.New("no PEM private key block found")
	ErrNotPKCS8   = errors.New("key is not PKCS#8 encoded")
	ErrWrongCurve = errors.New("key is not an ECDSA P-256 key")
)

// Key is a parsed .p8 key together with its original text.
type Key struct {
	Raw     string
	Private *ecdsa.PrivateKey
}

// Load reads and parses the key at path.
func Load(path string) (*Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", path, err)
	}
	k, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// Parse decodes a PEM "PRIVATE KEY" block holding a PKCS#8 P-256 key.
func Parse(data []byte) (*Key, error) {
	var block *pem.Block
	rest := data
	for {
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, ErrNoPEM
		}
		if block.Type == "PRIVATE KEY" {
			break
		}
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPKCS8, err)
	}

	priv, ok := parsed.(*ecdsa.PrivateKey)
	if !ok || priv.Curve != elliptic.P256() {
		return nil, ErrWrongCurve
	}

	return &Key{Raw: string(data), Private: priv}, nil
}

// Fingerprint returns the hex SHA-256 of the DER-encoded public key.
func (k *Key) Fingerprint() string {
	der, err := x509.MarshalPKIXPublicKey(&k.Private.PublicKey)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:])
}

// ShortFingerprint is the first 16 hex characters of Fingerprint.
func (k *Key) ShortFingerprint() string {
	fp := k.Fingerprint()
	if len(fp) > 16 {
		return fp[:16]
	}
	return fp
}

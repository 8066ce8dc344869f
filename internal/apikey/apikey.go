// Package apikey reads and writes the App Store Connect api_key.json file
// consumed by fastlane's app_store_connect_api_key action.
package apikey

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"
)

// DefaultOutput is where fastlane looks for the key file by convention.
const DefaultOutput = "fastlane/api_key.json"

// ErrInvalidRecord is returned when a record is missing or has malformed fields.
var ErrInvalidRecord = errors.New("invalid api key record")

var (
	keyIDPattern    = regexp.MustCompile(`^[A-Z0-9]{10}$`)
	issuerIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	fileNamePattern = regexp.MustCompile(`^AuthKey_([A-Z0-9]{10})\.p8$`)
)

// Record is the on-disk shape of api_key.json. Field order is significant.
type Record struct {
	KeyID    string `json:"key_id"`
	IssuerID string `json:"issuer_id"`
	Key      string `json:"key"`
	InHouse  bool   `json:"in_house"`
}

// Validate checks that every field is present and well formed.
func (r Record) Validate() error {
	switch {
	case r.KeyID == "":
		return fmt.Errorf("%w: key_id is empty", ErrInvalidRecord)
	case !keyIDPattern.MatchString(r.KeyID):
		return fmt.Errorf("%w: key_id %q must be 10 upper-case letters or digits", ErrInvalidRecord, r.KeyID)
	case r.IssuerID == "":
		return fmt.Errorf("%w: issuer_id is empty", ErrInvalidRecord)
	case !issuerIDPattern.MatchString(r.IssuerID):
		return fmt.Errorf("%w: issuer_id %q is not a UUID", ErrInvalidRecord, r.IssuerID)
	case r.Key == "":
		return fmt.Errorf("%w: key is empty", ErrInvalidRecord)
	case !utf8.ValidString(r.Key):
		return fmt.Errorf("%w: key is not valid UTF-8", ErrInvalidRecord)
	}
	return nil
}

// Marshal renders the record as two-space indented JSON without HTML escaping
// and without a trailing newline.
func Marshal(r Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteFile validates r and atomically writes it to path with mode 0600.
func WriteFile(path string, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".api_key-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ReadFile loads and validates an existing api_key.json.
func ReadFile(path string) (Record, error) {
	var r Record
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// KeyIDFromPath extracts KEYID from a file named AuthKey_KEYID.p8.
func KeyIDFromPath(path string) (string, bool) {
	m := fileNamePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ValidKeyID reports whether id looks like an App Store Connect key id.
func ValidKeyID(id string) bool {
	return keyIDPattern.MatchString(id)
}

// ValidIssuerID reports whether id looks like an App Store Connect issuer id.
func ValidIssuerID(id string) bool {
	return issuerIDPattern.MatchString(id)
}

// VaultName is the vault entry name used for the key contents of id.
func VaultName(id string) string {
	return "AuthKey_" + id
}

package vault

import (
	"encoding/base64"
	"fmt"
	"os/exec"
	"strings"
)

const serviceName = "fastkey-vault"

// KeychainVault stores keys in the macOS Keychain. Values are base64 encoded
// because `security -w` mangles multi-line PEM text.
type KeychainVault struct {
	run func(args ...string) ([]byte, error)
}

// NewKeychain creates a new macOS Keychain vault.
func NewKeychain() *KeychainVault {
	return &KeychainVault{run: runSecurity}
}

func runSecurity(args ...string) ([]byte, error) {
	return exec.Command("security", args...).CombinedOutput()
}

// Set stores a value in the Keychain, replacing any existing entry.
func (k *KeychainVault) Set(name, value string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(value))
	out, err := k.run("add-generic-password",
		"-s", serviceName,
		"-a", name,
		"-w", encoded,
		"-U", // update if exists
	)
	if err != nil {
		return fmt.Errorf("keychain set: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// Get retrieves a value from the Keychain.
func (k *KeychainVault) Get(name string) (string, error) {
	out, err := k.run("find-generic-password",
		"-s", serviceName,
		"-a", name,
		"-w", // output password only
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(out)))
	if err != nil {
		return "", fmt.Errorf("keychain entry %s is corrupt: %w", name, err)
	}
	return string(decoded), nil
}

// Delete removes an entry from the Keychain.
func (k *KeychainVault) Delete(name string) error {
	out, err := k.run("delete-generic-password",
		"-s", serviceName,
		"-a", name,
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrNotFound, name, strings.TrimSpace(string(out)))
	}
	return nil
}

// List returns all entry names stored under the fastkey service.
func (k *KeychainVault) List() ([]string, error) {
	out, err := k.run("dump-keychain")
	if err != nil {
		return nil, fmt.Errorf("keychain list: %w", err)
	}
	return parseDump(string(out)), nil
}

func parseDump(dump string) []string {
	var names []string
	svce := fmt.Sprintf(`"svce"<blob>="%s"`, serviceName)
	const acct = `"acct"<blob>="`

	// dump-keychain prints acct before svce within an entry, so remember the
	// last account seen and commit it when the service matches.
	var pending string
	for _, line := range strings.Split(dump, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "keychain:") {
			pending = ""
			continue
		}
		if i := strings.Index(line, acct); i >= 0 {
			start := i + len(acct)
			end := strings.LastIndex(line, `"`)
			if end > start {
				pending = line[start:end]
			}
			continue
		}
		if strings.Contains(line, svce) && pending != "" {
			names = append(names, pending)
			pending = ""
		}
	}
	return names
}

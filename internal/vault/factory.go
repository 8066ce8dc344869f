package vault

import (
	"fmt"
	"runtime"
)

// New returns the vault for the configured backend. "auto" (or empty) uses
// the system Keychain on macOS and the encrypted file everywhere else.
func New(backend string) (Vault, error) {
	switch backend {
	case "", "auto":
		if runtime.GOOS == "darwin" {
			return NewKeychain(), nil
		}
		return NewFileVault(), nil
	case "keychain":
		if runtime.GOOS != "darwin" {
			return nil, fmt.Errorf("keychain backend is only available on macOS")
		}
		return NewKeychain(), nil
	case "file":
		return NewFileVault(), nil
	default:
		return nil, fmt.Errorf("unknown vault backend %q", backend)
	}
}

package vault

import "errors"

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("vault entry not found")

// Vault provides secure storage for App Store Connect private keys.
type Vault interface {
	Set(name, value string) error
	Get(name string) (string, error)
	Delete(name string) error
	List() ([]string, error)
}

// Mask returns a masked version of a value for display.
func Mask(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "..." + value[len(value)-4:]
}

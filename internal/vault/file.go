package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	entriesFile = "vault.json"
	secretFile  = "vault.key"
	secretSize  = 32
)

// ErrNoSecret is returned when the vault has entries but its secret file is
// gone, so nothing can be decrypted.
var ErrNoSecret = errors.New("vault secret missing")

// FileVault keeps private keys in ~/.config/fastkey/vault.json. Each entry is
// sealed separately with AES-256-GCM under a random secret stored in
// vault.key (mode 0600) next to it. The entry name is bound to its
// ciphertext, so entries cannot be swapped between key ids.
type FileVault struct {
	dir string
}

type sealedEntry struct {
	Sealed   []byte    `json:"sealed"` // nonce followed by ciphertext
	StoredAt time.Time `json:"stored_at"`
}

type vaultFile struct {
	Version int                    `json:"version"`
	Entries map[string]sealedEntry `json:"entries"`
}

// NewFileVault returns the vault under the fastkey config directory.
func NewFileVault() *FileVault {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return &FileVault{dir: filepath.Join(dir, "fastkey")}
}

func (f *FileVault) Set(name, value string) error {
	vf, err := f.load()
	if err != nil {
		return err
	}
	// A fresh secret would orphan existing entries.
	secret, err := f.secret(len(vf.Entries) == 0)
	if err != nil {
		return err
	}
	sealed, err := seal(secret, name, []byte(value))
	if err != nil {
		return err
	}
	vf.Entries[name] = sealedEntry{Sealed: sealed, StoredAt: time.Now().UTC()}
	return f.save(vf)
}

func (f *FileVault) Get(name string) (string, error) {
	vf, err := f.load()
	if err != nil {
		return "", err
	}
	e, ok := vf.Entries[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	secret, err := f.secret(false)
	if err != nil {
		return "", err
	}
	plain, err := unseal(secret, name, e.Sealed)
	if err != nil {
		return "", fmt.Errorf("vault decrypt %s: %w", name, err)
	}
	return string(plain), nil
}

func (f *FileVault) Delete(name string) error {
	vf, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := vf.Entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(vf.Entries, name)
	return f.save(vf)
}

// List returns entry names. It does not need the secret.
func (f *FileVault) List() ([]string, error) {
	vf, err := f.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(vf.Entries))
	for name := range vf.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *FileVault) load() (*vaultFile, error) {
	vf := &vaultFile{Version: 1, Entries: map[string]sealedEntry{}}
	data, err := os.ReadFile(filepath.Join(f.dir, entriesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return vf, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, vf); err != nil {
		return nil, fmt.Errorf("vault parse: %w", err)
	}
	if vf.Entries == nil {
		vf.Entries = map[string]sealedEntry{}
	}
	return vf, nil
}

func (f *FileVault) save(vf *vaultFile) error {
	data, err := json.MarshalIndent(vf, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".vault-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(f.dir, entriesFile))
}

// secret reads vault.key, generating it first when create is set.
func (f *FileVault) secret(create bool) ([]byte, error) {
	path := filepath.Join(f.dir, secretFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if !create {
			return nil, fmt.Errorf("%w: %s", ErrNoSecret, path)
		}
		return f.createSecret(path)
	}
	if err != nil {
		return nil, err
	}
	if len(data) != secretSize {
		return nil, fmt.Errorf("vault secret %s: expected %d bytes, got %d", path, secretSize, len(data))
	}
	return data, nil
}

func (f *FileVault) createSecret(path string) ([]byte, error) {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return nil, err
	}
	secret := make([]byte, secretSize)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, err
	}

	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		// lost the race to another writer
		return f.secret(false)
	}
	if err != nil {
		return nil, err
	}
	if _, err := fh.Write(secret); err != nil {
		fh.Close()
		return nil, err
	}
	return secret, fh.Close()
}

func newGCM(secret []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(secret []byte, name string, plain []byte) ([]byte, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, []byte(name)), nil
}

func unseal(secret []byte, name string, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return nil, err
	}
	n := gcm.NonceSize()
	if len(sealed) < n {
		return nil, fmt.Errorf("ciphertext too short")
	}
	return gcm.Open(nil, sealed[:n], sealed[n:], []byte(name))
}

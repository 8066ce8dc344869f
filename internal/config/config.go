package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// ProjectFile is the per-repository config file name, looked up from the
// working directory upwards.
const ProjectFile = ".fastkey.toml"

var ErrProfileNotFound = errors.New("profile not found")

// Config holds fastkey configuration.
type Config struct {
	UI       UIConfig           `toml:"ui"`
	Defaults DefaultsConfig     `toml:"defaults"`
	Vault    VaultConfig        `toml:"vault"`
	Parallel ParallelConfig     `toml:"parallel"`
	Hooks    HooksConfig        `toml:"hooks"`
	Profiles map[string]Profile `toml:"profiles"`
}

// UIConfig controls display options.
type UIConfig struct {
	Emoji bool `toml:"emoji"`
	Color bool `toml:"color"`
}

// DefaultsConfig applies to generate when neither flag nor profile sets a value.
type DefaultsConfig struct {
	Output  string `toml:"output"`
	InHouse bool   `toml:"in_house"`
}

// VaultConfig controls vault backend selection.
type VaultConfig struct {
	Backend string `toml:"backend"` // "auto", "keychain", "file"
}

// ParallelConfig controls generate --all.
type ParallelConfig struct {
	Concurrency int `toml:"concurrency"`
}

// HooksConfig defines lifecycle hook scripts.
type HooksConfig struct {
	PreGenerate  string `toml:"pre_generate"`
	PostGenerate string `toml:"post_generate"`
}

// Profile is a named set of App Store Connect key settings.
type Profile struct {
	KeyID    string `toml:"key_id"`
	IssuerID string `toml:"issuer_id"`
	KeyPath  string `toml:"key_path,omitempty"`
	Output   string `toml:"output,omitempty"`
	InHouse  *bool  `toml:"in_house,omitempty"` // nil falls back to defaults.in_house
	Vault    bool   `toml:"vault"` // read the key from the vault instead of KeyPath
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI:       UIConfig{Emoji: true, Color: true},
		Vault:    VaultConfig{Backend: "auto"},
		Parallel: ParallelConfig{Concurrency: 4},
		Profiles: map[string]Profile{},
	}
}

// ConfigDir returns the fastkey config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "fastkey")
}

// Path returns the user config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the user config and overlays the nearest project config.
// Missing files yield defaults; malformed files are reported.
func Load() (*Config, error) {
	cfg := Default()
	if err := decodeFile(Path(), cfg); err != nil {
		return cfg, err
	}
	if project := findProjectConfig(); project != "" {
		if err := decodeFile(project, cfg); err != nil {
			return cfg, err
		}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return cfg, nil
}

// LoadUser reads only the user config. Commands that write the config use
// this so project overrides are not copied into the user file.
func LoadUser() (*Config, error) {
	cfg := Default()
	err := decodeFile(Path(), cfg)
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return cfg, err
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// findProjectConfig walks up from the working directory looking for ProjectFile.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return p, nil
}

// ProfileNames returns profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

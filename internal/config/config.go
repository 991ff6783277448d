package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "filtersquash"

	// KeyringUser is the keyring account name for the OAuth token when no
	// Gmail account is configured yet.
	KeyringUser = "oauth-token"

	TokenStoreKeyring = "keyring"
	TokenStoreFile    = "file"

	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"
)

// AuthConfig locates the OAuth client secret and controls where the
// access/refresh token is cached between runs.
type AuthConfig struct {
	// CredentialsFile is the OAuth client secret JSON downloaded from the
	// Google Cloud console. Relative paths resolve against the config dir.
	CredentialsFile string `yaml:"credentials_file"`

	// TokenStore is "keyring" (default) or "file".
	TokenStore string `yaml:"token_store"`

	// TokenFile is the token cache path for the "file" store. Relative
	// paths resolve against the config dir.
	TokenFile string `yaml:"token_file"`

	// Account is the Gmail address the token belongs to. Informational,
	// and used as the keyring account name when set.
	Account string `yaml:"account"`
}

type DefaultsConfig struct {
	Format string `yaml:"format"`
}

type Config struct {
	Auth     AuthConfig     `yaml:"auth"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

func DefaultConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			CredentialsFile: DefaultCredentialsFile,
			TokenStore:      TokenStoreKeyring,
			TokenFile:       DefaultTokenFile,
		},
		Defaults: DefaultsConfig{
			Format: "text",
		},
	}
}

func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, AppName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s - run 'filtersquash config init' to create one", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// CredentialsPath resolves the client secret location, joining relative
// paths onto the config dir.
func (c *Config) CredentialsPath() (string, error) {
	return c.resolve(c.Auth.CredentialsFile, DefaultCredentialsFile)
}

func (c *Config) tokenFilePath() (string, error) {
	return c.resolve(c.Auth.TokenFile, DefaultTokenFile)
}

func (c *Config) resolve(path, fallback string) (string, error) {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}

func (c *Config) keyringUser() string {
	if c.Auth.Account != "" {
		return c.Auth.Account
	}
	return KeyringUser
}

// ErrNoToken is returned when no token has been cached yet for the
// configured store.
var ErrNoToken = errors.New("no cached token")

// SaveToken persists the serialized OAuth token in the configured store.
func (c *Config) SaveToken(data []byte) error {
	switch c.Auth.TokenStore {
	case TokenStoreFile:
		path, err := c.tokenFilePath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
		return os.WriteFile(path, data, 0600)
	default:
		return keyring.Set(AppName, c.keyringUser(), string(data))
	}
}

// LoadToken fetches the cached OAuth token, or ErrNoToken if the store
// has none for this account.
func (c *Config) LoadToken() ([]byte, error) {
	switch c.Auth.TokenStore {
	case TokenStoreFile:
		path, err := c.tokenFilePath()
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return data, err
	default:
		secret, err := keyring.Get(AppName, c.keyringUser())
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoToken
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read token from keyring: %w", err)
		}
		return []byte(secret), nil
	}
}

// DeleteToken drops the cached token. Missing tokens are not an error.
func (c *Config) DeleteToken() error {
	switch c.Auth.TokenStore {
	case TokenStoreFile:
		path, err := c.tokenFilePath()
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	default:
		err := keyring.Delete(AppName, c.keyringUser())
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}
}

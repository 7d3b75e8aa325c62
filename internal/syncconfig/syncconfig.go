package syncconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the global qc config stored at ~/.config/qc/config.json.
type Config struct {
	ServerURL string `json:"server_url,omitempty"`
	AutoSync  *bool  `json:"auto_sync,omitempty"` // nil = default true
}

// AuthCredentials stores the session cookie at ~/.config/qc/auth.json.
type AuthCredentials struct {
	Session   string `json:"session"`
	Email     string `json:"email,omitempty"`
	ServerURL string `json:"server_url,omitempty"`
}

const defaultServerURL = "http://localhost:8000"

// ConfigDir returns ~/.config/qc, creating it if necessary.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", "qc")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// LoadConfig reads the global config from ~/.config/qc/config.json.
func LoadConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the global config to ~/.config/qc/config.json.
func SaveConfig(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// LoadAuth reads the session credentials from ~/.config/qc/auth.json.
func LoadAuth() (*AuthCredentials, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "auth.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var creds AuthCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// SaveAuth writes the session credentials to ~/.config/qc/auth.json (0600 perms).
func SaveAuth(creds *AuthCredentials) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "auth.json"), data, 0600)
}

// ClearAuth removes the auth.json file.
func ClearAuth() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, "auth.json"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// GetServerURL returns the bookmark server URL.
// Priority: QC_SERVER_URL env > config.json > default.
func GetServerURL() string {
	if v := os.Getenv("QC_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := LoadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

// GetSession returns the session cookie value.
// Priority: QC_SESSION env > auth.json.
func GetSession() string {
	if v := os.Getenv("QC_SESSION"); v != "" {
		return v
	}
	creds, err := LoadAuth()
	if err == nil && creds != nil {
		return creds.Session
	}
	return ""
}

// HasSession returns true if a session cookie is available.
func HasSession() bool {
	return GetSession() != ""
}

// GetAutoSync returns whether mutations trigger an immediate sync attempt.
// Priority: QC_AUTO_SYNC env > config.json > true.
func GetAutoSync() bool {
	if v := strings.ToLower(os.Getenv("QC_AUTO_SYNC")); v != "" {
		return v == "1" || v == "true"
	}
	cfg, err := LoadConfig()
	if err == nil && cfg.AutoSync != nil {
		return *cfg.AutoSync
	}
	return true
}

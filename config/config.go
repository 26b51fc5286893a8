package config

import (
	"encoding/json"
	"fmt"
	"go-game-hub/constants"
	"go-game-hub/types"
	"os"
	"path/filepath"
	"sync"
)

// ConfigManager handles loading/saving
type ConfigManager struct {
	Config     *types.AppConfig
	ConfigPath string
	Mu         sync.RWMutex // Thread-safety for UI reads/writes
}

// NewConfigManager initializes the manager and determines the file path
func NewConfigManager() *ConfigManager {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to executable dir if home is not available
		exePath, err := os.Executable()
		if err != nil {
			exePath = "."
		}
		return NewConfigManagerAt(filepath.Join(filepath.Dir(exePath), "config.json"))
	}
	return NewConfigManagerAt(filepath.Join(home, constants.AppDir, constants.ConfigDir, "config.json"))
}

// NewConfigManagerAt returns a manager for an explicit config file.
func NewConfigManagerAt(path string) *ConfigManager {
	return &ConfigManager{
		ConfigPath: path,
		Config:     &types.AppConfig{},
	}
}

// Load reads the config from disk
func (cm *ConfigManager) Load() error {
	cm.Mu.Lock()
	defer cm.Mu.Unlock()

	if _, err := os.Stat(cm.ConfigPath); os.IsNotExist(err) {
		return cm.createDefault()
	}

	data, err := os.ReadFile(cm.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cm.Config); err != nil {
		return fmt.Errorf("failed to parse config json: %w", err)
	}

	applyDefaults(cm.Config)
	return nil
}

// GetConfig returns a copy of the current config (Thread-Safe)
func (cm *ConfigManager) GetConfig() types.AppConfig {
	cm.Mu.RLock()
	defer cm.Mu.RUnlock()
	return *cm.Config
}

// Save writes the given config to disk and makes it current
func (cm *ConfigManager) Save(newConfig types.AppConfig) error {
	cm.Mu.Lock()
	defer cm.Mu.Unlock()

	*cm.Config = newConfig
	return cm.write()
}

// GetDefaultDataPath returns the cross-platform default data directory
func GetDefaultDataPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, constants.AppDir, constants.DataDir), nil
}

func applyDefaults(cfg *types.AppConfig) {
	if cfg.FetchTimeoutSeconds <= 0 {
		cfg.FetchTimeoutSeconds = int(constants.DefaultFetchTimeout.Seconds())
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = constants.BackendSQLite
	}
	if cfg.DataPath == "" {
		cfg.DataPath, _ = GetDefaultDataPath()
		if cfg.DataPath == "" {
			cfg.DataPath = filepath.Join(".", constants.DataDir)
		}
	}
}

// createDefault generates a config file if none exists
func (cm *ConfigManager) createDefault() error {
	cm.Config = &types.AppConfig{}
	applyDefaults(cm.Config)

	fmt.Println("Config file not found. Creating default at:", cm.ConfigPath)
	return cm.write()
}

func (cm *ConfigManager) write() error {
	dir := filepath.Dir(cm.ConfigPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.Config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cm.ConfigPath, data, 0o644)
}

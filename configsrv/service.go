package configsrv

import (
	"fmt"
	"go-game-hub/types"
)

// ConfigManager defines the interface for managing the app configuration.
type ConfigManager interface {
	ConfigGetConfig() types.AppConfig
	ConfigSave(cfg types.AppConfig) error
}

// UIProvider defines the UI interactions needed for configuration.
type UIProvider interface {
	OpenFileDialog(title string, filters []string) (string, error)
	OpenDirectoryDialog(title string) (string, error)
}

// Service handles configuration-related logic.
type Service struct {
	cm ConfigManager
	ui UIProvider
}

// New creates a new Config service.
func New(cm ConfigManager, ui UIProvider) *Service {
	return &Service{
		cm: cm,
		ui: ui,
	}
}

// GetConfig returns the current configuration.
func (s *Service) GetConfig() types.AppConfig {
	return s.cm.ConfigGetConfig()
}

// SaveConfig merges and saves the configuration. The boolean reports whether
// the catalog source or the storage location changed, in which case the
// caller has to rebuild its pipeline.
func (s *Service) SaveConfig(cfg types.AppConfig) (string, bool) {
	current := s.cm.ConfigGetConfig()
	old := current

	updateIfNotEmpty(&current.CatalogURL, cfg.CatalogURL)
	updateIfNotEmpty(&current.StorageBackend, cfg.StorageBackend)
	updateIfNotEmpty(&current.DataPath, cfg.DataPath)
	if cfg.FetchTimeoutSeconds > 0 {
		current.FetchTimeoutSeconds = cfg.FetchTimeoutSeconds
	}

	if err := s.cm.ConfigSave(current); err != nil {
		return fmt.Sprintf("Error saving config: %s", err.Error()), false
	}

	return "Configuration saved successfully!", current != old
}

func updateIfNotEmpty(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// SelectCatalogFile lets the user pick a local games.json as the base catalog.
func (s *Service) SelectCatalogFile() (string, error) {
	selectedFile, err := s.ui.OpenFileDialog("Select Game Catalog", []string{"*.json"})
	if err != nil {
		return "", err
	}

	if selectedFile != "" {
		cfg := s.cm.ConfigGetConfig()
		cfg.CatalogURL = selectedFile
		if err = s.cm.ConfigSave(cfg); err != nil {
			return "", fmt.Errorf("failed to save config: %w", err)
		}
	}

	return selectedFile, nil
}

// SelectDataPath handles the selection of the directory holding custom games.
func (s *Service) SelectDataPath() (string, error) {
	selectedDir, err := s.ui.OpenDirectoryDialog("Select Data Directory")
	if err != nil {
		return "", err
	}

	if selectedDir != "" {
		cfg := s.cm.ConfigGetConfig()
		cfg.DataPath = selectedDir
		if err = s.cm.ConfigSave(cfg); err != nil {
			return "", fmt.Errorf("failed to save config: %w", err)
		}
	}

	return selectedDir, nil
}

package configsrv

import (
	"errors"
	"go-game-hub/types"
	"testing"
)

// MockConfigManager implements ConfigManager interface
type MockConfigManager struct {
	Config     types.AppConfig
	SaveCalled bool
	SaveError  error
}

func (m *MockConfigManager) ConfigGetConfig() types.AppConfig {
	return m.Config
}

func (m *MockConfigManager) ConfigSave(cfg types.AppConfig) error {
	m.SaveCalled = true
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Config = cfg
	return nil
}

// MockUIProvider implements UIProvider interface
type MockUIProvider struct {
	SelectedFile string
	SelectedDir  string
	LastFilters  []string
	Error        error
}

func (m *MockUIProvider) OpenFileDialog(title string, filters []string) (string, error) {
	m.LastFilters = filters
	return m.SelectedFile, m.Error
}

func (m *MockUIProvider) OpenDirectoryDialog(title string) (string, error) {
	return m.SelectedDir, m.Error
}

func TestNew(t *testing.T) {
	cm := &MockConfigManager{}
	ui := &MockUIProvider{}
	s := New(cm, ui)

	if s.cm != cm {
		t.Errorf("Expected cm to be set")
	}
	if s.ui != ui {
		t.Errorf("Expected ui to be set")
	}
}

func TestGetConfig(t *testing.T) {
	expected := types.AppConfig{CatalogURL: "http://localhost:8080/games.json"}
	s := New(&MockConfigManager{Config: expected}, nil)

	if actual := s.GetConfig(); actual.CatalogURL != expected.CatalogURL {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

func TestSaveConfig(t *testing.T) {
	cm := &MockConfigManager{
		Config: types.AppConfig{
			CatalogURL:          "old-catalog",
			FetchTimeoutSeconds: 5,
			StorageBackend:      "sqlite",
			DataPath:            "/data",
		},
	}
	s := New(cm, nil)

	msg, changed := s.SaveConfig(types.AppConfig{CatalogURL: "new-catalog"})

	if !changed {
		t.Errorf("Expected changed to be true")
	}
	if msg != "Configuration saved successfully!" {
		t.Errorf("Unexpected message: %s", msg)
	}
	if cm.Config.CatalogURL != "new-catalog" {
		t.Errorf("Expected CatalogURL to be updated")
	}
	if cm.Config.DataPath != "/data" || cm.Config.StorageBackend != "sqlite" {
		t.Errorf("Expected untouched fields to be preserved, got %+v", cm.Config)
	}
	if cm.Config.FetchTimeoutSeconds != 5 {
		t.Errorf("Expected timeout to be preserved, got %d", cm.Config.FetchTimeoutSeconds)
	}
}

func TestSaveConfig_Unchanged(t *testing.T) {
	cm := &MockConfigManager{Config: types.AppConfig{CatalogURL: "same"}}
	s := New(cm, nil)

	_, changed := s.SaveConfig(types.AppConfig{CatalogURL: "same"})
	if changed {
		t.Errorf("Expected changed to be false when nothing differs")
	}
	if !cm.SaveCalled {
		t.Errorf("Expected config to be written anyway")
	}
}

func TestSaveConfig_Error(t *testing.T) {
	cm := &MockConfigManager{SaveError: errors.New("save failed")}
	s := New(cm, nil)

	msg, changed := s.SaveConfig(types.AppConfig{CatalogURL: "x"})

	if changed {
		t.Errorf("Expected changed to be false")
	}
	if msg != "Error saving config: save failed" {
		t.Errorf("Unexpected error message: %s", msg)
	}
}

func TestSelectCatalogFile(t *testing.T) {
	cm := &MockConfigManager{}
	ui := &MockUIProvider{SelectedFile: "/path/to/games.json"}
	s := New(cm, ui)

	selected, err := s.SelectCatalogFile()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if selected != "/path/to/games.json" {
		t.Errorf("Expected %s, got %s", "/path/to/games.json", selected)
	}
	if cm.Config.CatalogURL != "/path/to/games.json" {
		t.Errorf("Expected config to be updated")
	}
	if len(ui.LastFilters) != 1 || ui.LastFilters[0] != "*.json" {
		t.Errorf("Expected json filter, got %v", ui.LastFilters)
	}
}

func TestSelectCatalogFile_Cancelled(t *testing.T) {
	cm := &MockConfigManager{Config: types.AppConfig{CatalogURL: "keep"}}
	s := New(cm, &MockUIProvider{})

	selected, err := s.SelectCatalogFile()
	if err != nil || selected != "" {
		t.Errorf("Expected empty selection without error, got %q, %v", selected, err)
	}
	if cm.SaveCalled {
		t.Errorf("Config should not be saved when the dialog is cancelled")
	}
}

func TestSelectDataPath(t *testing.T) {
	cm := &MockConfigManager{}
	ui := &MockUIProvider{SelectedDir: "/path/to/data"}
	s := New(cm, ui)

	selected, err := s.SelectDataPath()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if selected != "/path/to/data" {
		t.Errorf("Expected %s, got %s", "/path/to/data", selected)
	}
	if cm.Config.DataPath != "/path/to/data" {
		t.Errorf("Expected config to be updated")
	}
}

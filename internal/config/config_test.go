package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test convert defaults
	if cfg.Convert.Scale != 1.0 {
		t.Errorf("expected scale 1.0, got %f", cfg.Convert.Scale)
	}
	if cfg.Convert.Roll != 0 || cfg.Convert.Pitch != 0 || cfg.Convert.Yaw != 0 {
		t.Errorf("expected zero rotation, got %f/%f/%f", cfg.Convert.Roll, cfg.Convert.Pitch, cfg.Convert.Yaw)
	}
	if cfg.Convert.ObjectName != "collision" {
		t.Errorf("expected object name 'collision', got %s", cfg.Convert.ObjectName)
	}

	// Test batch defaults
	if cfg.Batch.Workers != 0 {
		t.Errorf("expected 0 workers (auto), got %d", cfg.Batch.Workers)
	}
	if cfg.Batch.Extension != ".3ds" {
		t.Errorf("expected extension .3ds, got %s", cfg.Batch.Extension)
	}

	// Test watch defaults
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("expected debounce 200ms, got %v", cfg.Watch.Debounce)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
convert:
  scale: 2.5
  roll: 90
  pitch: -45
  yaw: 180
  object_name: "hull"

batch:
  workers: 4
  extension: ".3DS"

watch:
  debounce: 1s

logging:
  level: "debug"
  log_file: "convert.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Convert.Scale != 2.5 {
		t.Errorf("expected scale 2.5, got %f", cfg.Convert.Scale)
	}
	if cfg.Convert.Roll != 90 || cfg.Convert.Pitch != -45 || cfg.Convert.Yaw != 180 {
		t.Errorf("expected rotation 90/-45/180, got %f/%f/%f", cfg.Convert.Roll, cfg.Convert.Pitch, cfg.Convert.Yaw)
	}
	if cfg.Convert.ObjectName != "hull" {
		t.Errorf("expected object name 'hull', got %s", cfg.Convert.ObjectName)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Batch.Workers)
	}
	if cfg.Batch.Extension != ".3DS" {
		t.Errorf("expected extension .3DS, got %s", cfg.Batch.Extension)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "convert.log" {
		t.Errorf("expected log file 'convert.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("convert:\n  yaw: 90\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Unset keys keep their defaults
	if cfg.Convert.Yaw != 90 {
		t.Errorf("expected yaw 90, got %f", cfg.Convert.Yaw)
	}
	if cfg.Convert.Scale != 1.0 {
		t.Errorf("expected default scale 1.0, got %f", cfg.Convert.Scale)
	}
	if cfg.Convert.ObjectName != "collision" {
		t.Errorf("expected default object name, got %s", cfg.Convert.ObjectName)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
convert:
  scale: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromExplicitMissing(t *testing.T) {
	if _, err := LoadFrom("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for explicit missing config, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// A generic config.yaml in the working directory is not ours
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("convert:\n  scale: 9\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "" {
		t.Errorf("expected ./config.yaml to be ignored, got %s", path)
	}

	// Create obj23ds.yaml in current directory
	configPath := filepath.Join(tmpDir, "obj23ds.yaml")
	if err := os.WriteFile(configPath, []byte("convert:\n  scale: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find obj23ds.yaml in current directory")
	}

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Convert.Scale != 3 {
		t.Errorf("expected scale 3 from discovered file, got %f", cfg.Convert.Scale)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "log file flag",
			setup: func() {
				*flagLogFile = "out.log"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagLogFile = ""
			},
		},
		{
			name: "name flag",
			setup: func() {
				*flagName = "walls"
			},
			verify: func(cfg *Config) {
				if cfg.Convert.ObjectName != "walls" {
					t.Errorf("expected object name walls, got %s", cfg.Convert.ObjectName)
				}
			},
			teardown: func() {
				*flagName = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
convert:
  scale: 4
  object_name: "fromfile"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagName = "fromflag"
	defer func() {
		*flagConfig = ""
		*flagName = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Name should be from flag, not file
	if cfg.Convert.ObjectName != "fromflag" {
		t.Errorf("expected object name from flag, got %s", cfg.Convert.ObjectName)
	}

	// Scale should be from file since there is no flag for it
	if cfg.Convert.Scale != 4 {
		t.Errorf("expected scale 4 from file, got %f", cfg.Convert.Scale)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Convert.Yaw = 270
	cfg.Watch.Debounce = 750 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config differs: %+v vs %+v", loaded, cfg)
	}
}

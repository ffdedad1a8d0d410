package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, read from config.toml next
// to the executable.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	ETL    ETLConfig    `toml:"etl"`
	Split  SplitConfig  `toml:"split"`
}

// ServerConfig configures the local API server.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig locates the data directory (database and exports).
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ETLConfig carries the normalizer's heuristic tunables. ScanRows and
// EmptyRowLimit are policies inherited from the observed source
// workbooks, not protocol constants, so they live in configuration.
type ETLConfig struct {
	InputDir      string `toml:"input_dir"`
	ScanRows      int    `toml:"scan_rows"`
	EmptyRowLimit int    `toml:"empty_row_limit"`
	ClearExisting bool   `toml:"clear_existing"`
}

// SplitConfig configures the preprocess balancing and split stage.
type SplitConfig struct {
	TestSize float64 `toml:"test_size"`
	ValSize  float64 `toml:"val_size"`
	Seed     int64   `toml:"seed"`
}

// LoadConfigInfo reports which fields the config file set explicitly.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the defaults used when config.toml is absent.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8750,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		ETL: ETLConfig{
			InputDir:      "Dataset",
			ScanRows:      20,
			EmptyRowLimit: 2,
			ClearExisting: true,
		},
		Split: SplitConfig{
			TestSize: 0.15,
			ValSize:  0.15,
			Seed:     42,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverAny, ok := raw["server"]
	if !ok {
		return false
	}
	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml from the executable's directory
// and reports which fields were set explicitly. A missing file yields the
// defaults.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, info, err
	}

	// Env override, used by local runs and E2E.
	if v := os.Getenv("TEMATA_INPUT_DIR"); v != "" {
		cfg.ETL.InputDir = v
	}

	return cfg, info, nil
}

// LoadConfig loads config.toml, falling back to defaults.
func LoadConfig() (*AppConfig, error) {
	cfg, _, err := LoadConfigWithInfo()
	return cfg, err
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory next to the executable and
// returns its path.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	dataDir := filepath.Join(exeDir, cfg.Data.DataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

package config

import "testing"

func TestDefaultConfig_Tunables(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.ETL.ScanRows != 20 {
		t.Fatalf("scan_rows = %d, want 20", cfg.ETL.ScanRows)
	}
	if cfg.ETL.EmptyRowLimit != 2 {
		t.Fatalf("empty_row_limit = %d, want 2", cfg.ETL.EmptyRowLimit)
	}
	if cfg.Split.TestSize != 0.15 || cfg.Split.ValSize != 0.15 || cfg.Split.Seed != 42 {
		t.Fatalf("unexpected split defaults: %+v", cfg.Split)
	}
}

func TestIsPortSpecifiedInToml(t *testing.T) {
	t.Parallel()

	if !isPortSpecifiedInToml([]byte("[server]\nport = 9000\n")) {
		t.Fatalf("explicit port must be detected")
	}
	if isPortSpecifiedInToml([]byte("[server]\ndev_mode = true\n")) {
		t.Fatalf("missing port must not be detected")
	}
	if isPortSpecifiedInToml([]byte("not toml at all [")) {
		t.Fatalf("invalid toml must not be detected")
	}
}

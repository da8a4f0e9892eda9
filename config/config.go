// Package config loads the codec's persistent settings (gap sizes, gap
// fill byte, default verbosity) from a TOML file, falling back to an
// embedded default on first run. Grounded on the teacher's config/config.go
// (same //go:embed default, same os.UserConfigDir/os.UserHomeDir branch on
// runtime.GOOS, same github.com/BurntSushi/toml decode), rewritten from a
// per-drive geometry schema to an mfm.Config gap-size schema.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/sergev/mfmdisk/mfm"
)

//go:embed mfm.toml
var defaultConfigData []byte

// File is the on-disk TOML shape.
type File struct {
	GapByte   int `toml:"gap_byte"`
	IndexGap  int `toml:"index_gap"`
	SectorGap int `toml:"sector_gap"`
	DataGap   int `toml:"data_gap"`
	Verbose   int `toml:"verbose"`
}

// path determines the config file path based on the operating system:
// %AppData%\mfmdisk\mfmdisk.toml on Windows, ~/.mfmdisk.toml elsewhere.
func path() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		return filepath.Join(dir, "mfmdisk", "mfmdisk.toml"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home directory: %w", err)
		}
		return filepath.Join(home, ".mfmdisk.toml"), nil
	}
}

// Load reads the user's config file, creating it from the embedded default
// if it doesn't exist yet, and returns an *mfm.Config built from it with
// Diag defaulting to os.Stdout (the caller is free to override it, e.g. to
// os.Stderr when writing image data to stdout).
func Load() (*mfm.Config, error) {
	configPath, err := path()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory %s: %w", configDir, err)
		}
		if err := os.WriteFile(configPath, defaultConfigData, 0644); err != nil {
			return nil, fmt.Errorf("failed to create default config file at %s: %w", configPath, err)
		}
	}

	var f File
	if _, err := toml.DecodeFile(configPath, &f); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config at %s: %w", configPath, err)
	}

	cfg := mfm.NewConfig()
	if f.GapByte != 0 {
		cfg.GapByte = byte(f.GapByte)
	}
	if f.IndexGap != 0 {
		cfg.IndexGap = f.IndexGap
	}
	if f.SectorGap != 0 {
		cfg.SectorGap = f.SectorGap
	}
	if f.DataGap != 0 {
		cfg.DataGap = f.DataGap
	}
	cfg.Verbose = f.Verbose
	return cfg, nil
}

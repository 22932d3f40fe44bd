package v3

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the core's YAML-backed configuration surface, grounded on the
// codenerd `internal/config` pattern. The outer CLI/service layer (out of
// scope for this module, per spec.md §1) is responsible for locating and
// loading this file; the core only ever consumes the decoded struct.
type Config struct {
	// RaceSlot is the v3 1..11 race identity of the local player, used to
	// parameterise every output filename (shipN.dat, pdataN.dat, ...).
	RaceSlot int `yaml:"race_slot"`

	// WorkingDir is where the unpacked v3 tree is staged and where client
	// edits are read back from during Maketurn.
	WorkingDir string `yaml:"working_dir"`

	// TemplateRoot is the second search location for spec-file templates,
	// consulted after WorkingDir (§4.2).
	TemplateRoot string `yaml:"template_root"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns sensible defaults, mirroring codenerd's
// DefaultBuildConfig helper style.
func DefaultConfig() Config {
	return Config{
		RaceSlot:   1,
		WorkingDir: ".",
		LogLevel:   "info",
	}
}

// LoadConfig reads and decodes a YAML config file. It never applies
// environment overrides or flag parsing itself — that belongs to the
// excluded CLI layer.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.RaceSlot < 1 || cfg.RaceSlot > 11 {
		return cfg, newErr(InputShape, nil, "config race_slot %d out of range 1..11", cfg.RaceSlot)
	}
	return cfg, nil
}

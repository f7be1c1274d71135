// Package config loads settings for the stealthbox driver from a YAML file,
// an optional .env file and STEALTH_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-dht-stealth/internal/crypto/curves"
	"github.com/smallyu/go-dht-stealth/internal/keys"
	"github.com/smallyu/go-dht-stealth/internal/logging"
)

const envPrefix = "STEALTH_"

// Config holds the driver settings. Mnemonic and Passphrase are secrets and
// are never printed by String.
type Config struct {
	Curve          string `yaml:"curve"`
	LogLevel       string `yaml:"log_level"`
	Mnemonic       string `yaml:"mnemonic"`
	Passphrase     string `yaml:"passphrase"`
	DerivationPath string `yaml:"derivation_path"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Curve:    "secp256k1",
		LogLevel: "info",
	}
}

// Load reads path (skipped when empty), then applies the .env file in the
// working directory if present, then the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	for name, dst := range map[string]*string{
		"CURVE":           &c.Curve,
		"LOG_LEVEL":       &c.LogLevel,
		"MNEMONIC":        &c.Mnemonic,
		"PASSPHRASE":      &c.Passphrase,
		"DERIVATION_PATH": &c.DerivationPath,
	} {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
}

// Validate checks that every field can be resolved.
func (c *Config) Validate() error {
	if _, err := curves.ByName(c.Curve); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := keys.ParsePath(c.DerivationPath); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) String() string {
	mnemonic := "unset"
	if c.Mnemonic != "" {
		mnemonic = "set"
	}
	return fmt.Sprintf("curve=%s log_level=%s derivation_path=%q mnemonic=%s",
		c.Curve, c.LogLevel, c.DerivationPath, mnemonic)
}

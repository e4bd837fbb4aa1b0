// Package config loads icdump settings from an INI file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-ini/ini"
	"github.com/pingcap/errors"
)

// DefaultFile is looked up in the user's home directory.
const DefaultFile = ".icdump.ini"

// Config holds the settings that may come from the config file or flags.
type Config struct {
	Timezone    string
	Format      string
	Compression string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Timezone:      "Local",
		Format:        "text",
		Compression:   "none",
		LogLevel:      "warn",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Annotatef(err, "stat config file %s", path)
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to load config file %s", path)
	}

	dump := iniFile.Section("dump")
	cfg.Timezone = dump.Key("timezone").MustString(cfg.Timezone)
	cfg.Format = dump.Key("format").MustString(cfg.Format)
	cfg.Compression = dump.Key("compression").MustString(cfg.Compression)

	logSection := iniFile.Section("log")
	cfg.LogLevel = logSection.Key("level").MustString(cfg.LogLevel)
	cfg.LogFile = logSection.Key("file").MustString(cfg.LogFile)
	cfg.LogMaxSizeMB = logSection.Key("max_size_mb").MustInt(cfg.LogMaxSizeMB)
	cfg.LogMaxBackups = logSection.Key("max_backups").MustInt(cfg.LogMaxBackups)

	return cfg, nil
}

// Location resolves Timezone. "Local" and the empty string mean time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid timezone %q", c.Timezone)
	}
	return loc, nil
}

// DefaultPath returns the config file path in the user's home directory.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultFile
	}
	return filepath.Join(homeDir, DefaultFile)
}

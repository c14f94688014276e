package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"vault-harvester/internal/harvest"
	"vault-harvester/internal/provider/hyperliquid"
)

// Config holds application configuration from env (optionally seeded from a YAML file)
type Config struct {
	DataDir          string `yaml:"data_dir" validate:"required"`
	SaveFormat       string `yaml:"save_format" validate:"oneof=csv parquet json"`
	LogLevel         string `yaml:"log_level"` // debug | info | warn | error
	LogFormat        string `yaml:"log_format" validate:"omitempty,oneof=text json"`
	VaultsURL        string `yaml:"vaults_url" validate:"required,url"`
	InfoURL          string `yaml:"info_url" validate:"required,url"`
	UserAgent        string `yaml:"user_agent"`
	Timezone         string `yaml:"timezone" validate:"required"`
	DetailHeaderMode string `yaml:"detail_header_mode" validate:"oneof=union first-row"`
	RunSchedule      string `yaml:"run_schedule"` // cron expression; empty runs once
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		DataDir:          "data",
		SaveFormat:       "csv",
		LogLevel:         "info",
		LogFormat:        "text",
		VaultsURL:        hyperliquid.DefaultVaultsURL,
		InfoURL:          hyperliquid.DefaultInfoURL,
		UserAgent:        hyperliquid.DefaultUserAgent,
		Timezone:         "Local",
		DetailHeaderMode: string(harvest.HeaderUnion),
	}
}

// LoadConfig reads config: defaults, then CONFIG_FILE (YAML) if set, then environment.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.SaveFormat = strings.ToLower(getEnv("SAVE_FORMAT", c.SaveFormat))
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", c.LogFormat))
	c.VaultsURL = getEnv("VAULTS_URL", c.VaultsURL)
	c.InfoURL = getEnv("INFO_URL", c.InfoURL)
	c.UserAgent = getEnv("USER_AGENT", c.UserAgent)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)
	c.DetailHeaderMode = strings.ToLower(getEnv("DETAIL_HEADER_MODE", c.DetailHeaderMode))
	c.RunSchedule = getEnv("RUN_SCHEDULE", c.RunSchedule)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Validate checks field constraints, the timezone and the cron schedule.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.Timezone, err)
	}
	if c.RunSchedule != "" {
		if _, err := cron.ParseStandard(c.RunSchedule); err != nil {
			return fmt.Errorf("invalid config: run_schedule %q: %w", c.RunSchedule, err)
		}
	}
	return nil
}

// Location returns the timezone used for readable timestamps.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Paths returns the stage hand-off locations under DataDir for the given file extension.
func (c *Config) Paths(ext string) harvest.Paths {
	return harvest.Paths{
		VaultList:    filepath.Join(c.DataDir, "hyperliquid_vaults."+ext),
		Details:      filepath.Join(c.DataDir, "vault_details."+ext),
		PortfolioDir: filepath.Join(c.DataDir, "vault_portfolios"),
		TradesDir:    filepath.Join(c.DataDir, "vault_trades"),
		Report:       c.ReportPath(),
	}
}

// ReportPath returns path to .lastrun.json
func (c *Config) ReportPath() string {
	return filepath.Join(c.DataDir, ".lastrun.json")
}

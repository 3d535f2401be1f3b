package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Mode selects how fetched CSV rows are written to a target sheet.
type Mode string

const (
	// Replace clears the target sheet and rewrites it from the fetched table.
	Replace Mode = "replace"

	// Append appends only the fetched rows with an ID greater than the
	// largest ID already present in the target sheet.
	Append Mode = "append"
)

// Separator between the entries of the ENDPOINT and SHEETS environment lists.
const Separator = ";"

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 60 // Google Sheets write quota is 60 requests/minute/user
)

// Endpoint pairs a CSV endpoint URL with the sheet it updates. Endpoints are
// processed strictly in configuration order.
type Endpoint struct {
	URL   string `yaml:"url"`
	Sheet string `yaml:"sheet"`
}

// Config holds the per-run configuration for the sync pipeline.
//
// Configuration is resolved from (in increasing precedence) built-in defaults,
// a YAML configuration file and environment variables. The environment
// variables retain the names used by the original deployment:
//
//	GOOGLE_SHEET_ID  spreadsheet document ID
//	ENDPOINT         semicolon-separated list of CSV endpoint URLs
//	SHEETS           semicolon-separated list of target sheet names
//	SYNC_MODE        'replace' or 'append'
//	HTTP_TIMEOUT     per-fetch timeout e.g. '30s'
//	CREDENTIALS      path to the Google credentials JSON file
//	RATE_LIMIT       Sheets API requests/minute (0 disables rate limiting)
type Config struct {
	SpreadsheetID string
	Endpoints     []Endpoint
	Mode          Mode
	Timeout       time.Duration
	Credentials   string
	RateLimit     float64
}

// Load resolves the configuration for a run. An optional dotenv file is read
// into the environment first: an explicitly named file must exist, the default
// '.env' is loaded only if present. A missing configuration file is not an
// error - the environment alone is a complete configuration.
func Load(configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("unable to load env file %s (%v)", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("unable to load .env file (%v)", err)
		}
	}

	cfg := &Config{
		Mode:      Replace,
		Timeout:   DefaultTimeout,
		RateLimit: DefaultRateLimit,
	}

	if configFile != "" {
		if err := loadFromYAML(cfg, configFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to load configuration file %s (%v)", configFile, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFromYAML(cfg *Config, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var yamlCfg struct {
		SpreadsheetID string     `yaml:"spreadsheet_id"`
		Endpoints     []Endpoint `yaml:"endpoints"`
		Mode          string     `yaml:"mode"`
		Timeout       string     `yaml:"timeout"`
		Credentials   string     `yaml:"credentials"`
		RateLimit     *float64   `yaml:"rate_limit"`
	}

	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return err
	}

	if yamlCfg.SpreadsheetID != "" {
		cfg.SpreadsheetID = yamlCfg.SpreadsheetID
	}

	if len(yamlCfg.Endpoints) > 0 {
		cfg.Endpoints = yamlCfg.Endpoints
	}

	if yamlCfg.Mode != "" {
		mode, err := parseMode(yamlCfg.Mode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}

	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout '%s' (%v)", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}

	if yamlCfg.Credentials != "" {
		cfg.Credentials = yamlCfg.Credentials
	}

	if yamlCfg.RateLimit != nil {
		cfg.RateLimit = *yamlCfg.RateLimit
	}

	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		cfg.SpreadsheetID = strings.TrimSpace(v)
	}

	// The two lists stand or fall together: if either is set in the
	// environment the pair replaces any endpoints from the config file.
	endpoints := os.Getenv("ENDPOINT")
	sheets := os.Getenv("SHEETS")
	if endpoints != "" || sheets != "" {
		urls := split(endpoints)
		names := split(sheets)

		if len(urls) != len(names) {
			return fmt.Errorf("ENDPOINT and SHEETS lists must pair up (%v endpoints, %v sheet names)", len(urls), len(names))
		}

		pairs := make([]Endpoint, len(urls))
		for i := range urls {
			pairs[i] = Endpoint{URL: urls[i], Sheet: names[i]}
		}

		cfg.Endpoints = pairs
	}

	if v := os.Getenv("SYNC_MODE"); v != "" {
		mode, err := parseMode(v)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT '%s' (%v)", v, err)
		}
		cfg.Timeout = timeout
	}

	if v := os.Getenv("CREDENTIALS"); v != "" {
		cfg.Credentials = v
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT '%s' (%v)", v, err)
		}
		cfg.RateLimit = limit
	}

	return nil
}

func (c *Config) validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("GOOGLE_SHEET_ID is required")
	}

	if len(c.Endpoints) == 0 {
		return fmt.Errorf("at least one endpoint/sheet pair is required")
	}

	for i, e := range c.Endpoints {
		if strings.TrimSpace(e.URL) == "" {
			return fmt.Errorf("endpoint %v: URL is blank", i+1)
		}

		u, err := url.Parse(e.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("endpoint %v: invalid URL '%s'", i+1, e.URL)
		}

		if strings.TrimSpace(e.Sheet) == "" {
			return fmt.Errorf("endpoint %v: sheet name is blank", i+1)
		}
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("invalid HTTP timeout %v", c.Timeout)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit %v", c.RateLimit)
	}

	return nil
}

func parseMode(v string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(v))) {
	case Replace:
		return Replace, nil

	case Append:
		return Append, nil

	default:
		return "", fmt.Errorf("invalid sync mode '%s' - expected 'replace' or 'append'", v)
	}
}

// split splits a separator-joined list, trimming whitespace and discarding
// blank entries.
func split(list string) []string {
	entries := []string{}
	for _, v := range strings.Split(list, Separator) {
		if v = strings.TrimSpace(v); v != "" {
			entries = append(entries, v)
		}
	}

	return entries
}

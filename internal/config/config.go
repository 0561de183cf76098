// Package config loads remedian configuration: thresholds, the
// reporting endpoint, device identity, and output paths. Built-in
// defaults are embedded; a YAML file overrides them field by field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"remedian/internal/rules"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the full configuration surface.
type Config struct {
	// Endpoint is the report submission URL. Empty disables remote
	// reporting.
	Endpoint string `yaml:"endpoint"`

	Device  Device   `yaml:"device"`
	Output  Output   `yaml:"output"`
	Checks  Checks   `yaml:"checks"`
	Archive *Archive `yaml:"archive"`
}

// Device identifies this machine to the reporting endpoint. Identity is
// supplied by configuration, never baked into the core logic.
type Device struct {
	IDDevice int    `yaml:"id_device"`
	IDGroup  string `yaml:"id_group"`
}

// Output holds the diagnostic artifact paths. The preferred directory
// is tried first; the fallback is used when the preferred one is not
// writable.
type Output struct {
	Preferred string `yaml:"preferred"`
	Fallback  string `yaml:"fallback"`
}

// Checks carries the per-check thresholds.
type Checks struct {
	Disk       DiskCheck       `yaml:"disk"`
	Service    ServiceCheck    `yaml:"service"`
	Cache      CacheCheck      `yaml:"cache"`
	PrintQueue PrintQueueCheck `yaml:"print_queue"`
	Drivers    DriversCheck    `yaml:"drivers"`
	Profiles   ProfilesCheck   `yaml:"profiles"`
}

// DiskCheck configures the disk usage rule.
type DiskCheck struct {
	Path             string  `yaml:"path"`
	ThresholdPercent float64 `yaml:"threshold_percent"`
}

// ServiceCheck configures the service health rule.
type ServiceCheck struct {
	Name string `yaml:"name"`
}

// CacheCheck configures the cache size rule.
type CacheCheck struct {
	Roots    []string `yaml:"roots"`
	MaxBytes int64    `yaml:"max_bytes"`
}

// PrintQueueCheck configures the stuck print job rule.
type PrintQueueCheck struct {
	MaxJobAgeMinutes int    `yaml:"max_job_age_minutes"`
	SpoolDir         string `yaml:"spool_dir"`
}

// DriversCheck configures the driver staleness rule.
type DriversCheck struct {
	MaxAgeDays        int      `yaml:"max_age_days"`
	PrinterMaxAgeDays int      `yaml:"printer_max_age_days"`
	KnownBad          []string `yaml:"known_bad"`
}

// ProfilesCheck configures stale profile cleanup.
type ProfilesCheck struct {
	Root       string `yaml:"root"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Archive configures optional upload of report artifacts to an
// S3-compatible bucket.
type Archive struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Secure    bool   `yaml:"secure"`
}

// Load returns the embedded defaults overlaid with the YAML file at
// path, if given. Empty paths in the result are resolved to per-OS
// defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.resolvePaths()
	cfg.resolveCutoffs()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolvePaths() {
	if c.Checks.Disk.Path == "" {
		if runtime.GOOS == "windows" {
			c.Checks.Disk.Path = `C:\`
		} else {
			c.Checks.Disk.Path = "/"
		}
	}
	if c.Output.Preferred == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.Output.Preferred = filepath.Join(dir, "remedian")
		}
	}
	if c.Output.Fallback == "" {
		c.Output.Fallback = filepath.Join(os.TempDir(), "remedian")
	}
	if c.Checks.PrintQueue.SpoolDir == "" {
		if runtime.GOOS == "windows" {
			root := os.Getenv("SystemRoot")
			if root == "" {
				root = `C:\Windows`
			}
			c.Checks.PrintQueue.SpoolDir = filepath.Join(root, "System32", "spool", "PRINTERS")
		} else {
			c.Checks.PrintQueue.SpoolDir = "/var/spool/cups"
		}
	}
}

// resolveCutoffs fills omitted age cutoffs from the rule defaults. The
// rules package is the single source of these values; the config only
// overrides them.
func (c *Config) resolveCutoffs() {
	if c.Checks.PrintQueue.MaxJobAgeMinutes == 0 {
		c.Checks.PrintQueue.MaxJobAgeMinutes = int(rules.MaxJobAge / time.Minute)
	}
	if c.Checks.Drivers.MaxAgeDays == 0 {
		c.Checks.Drivers.MaxAgeDays = rules.DriverMaxAgeDays
	}
	if c.Checks.Drivers.PrinterMaxAgeDays == 0 {
		c.Checks.Drivers.PrinterMaxAgeDays = rules.PrinterDriverMaxAgeDays
	}
}

// Validate rejects configurations that would make a rule ungradeable.
// The disk threshold in particular has no compiled-in value: deployed
// copies disagreed on it, so it must come from configuration.
func (c *Config) Validate() error {
	if c.Checks.Disk.ThresholdPercent <= 0 || c.Checks.Disk.ThresholdPercent > 100 {
		return fmt.Errorf("checks.disk.threshold_percent must be in (0, 100], got %v", c.Checks.Disk.ThresholdPercent)
	}
	if c.Checks.Cache.MaxBytes <= 0 {
		return fmt.Errorf("checks.cache.max_bytes must be positive, got %d", c.Checks.Cache.MaxBytes)
	}
	if c.Checks.PrintQueue.MaxJobAgeMinutes <= 0 {
		return fmt.Errorf("checks.print_queue.max_job_age_minutes must be positive, got %d", c.Checks.PrintQueue.MaxJobAgeMinutes)
	}
	if c.Checks.Service.Name == "" {
		return fmt.Errorf("checks.service.name is required")
	}
	if c.Checks.Drivers.MaxAgeDays <= 0 || c.Checks.Drivers.PrinterMaxAgeDays <= 0 {
		return fmt.Errorf("checks.drivers age cutoffs must be positive")
	}
	if _, err := c.KnownBadPatterns(); err != nil {
		return err
	}
	if c.Archive != nil {
		if c.Archive.Endpoint == "" || c.Archive.Bucket == "" {
			return fmt.Errorf("archive requires endpoint and bucket")
		}
	}
	return nil
}

// KnownBadPatterns compiles the configured known-bad driver patterns.
// Matching is case-insensitive.
func (c *Config) KnownBadPatterns() ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(c.Checks.Drivers.KnownBad))
	for _, expr := range c.Checks.Drivers.KnownBad {
		p, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("invalid known_bad pattern %q: %w", expr, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Checklist struct {
		Path string `yaml:"path"` // "./checklist.yaml"
	} `yaml:"checklist"`

	Facts struct {
		Path string `yaml:"path"` // "./facts.json"
	} `yaml:"facts"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Policy struct {
		StrictProjection bool `yaml:"strict_projection"` // contract defects error instead of warn
		Workers          int  `yaml:"workers"`           // parallel item workers
	} `yaml:"policy"`

	API struct {
		Addr  string `yaml:"addr"`  // ":8080"
		Token string `yaml:"token"` // bearer token; empty = open
	} `yaml:"api"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Checklist.Path = "./checklist.yaml"
	c.Facts.Path = "./facts.json"
	c.Reporting.OutDir = "./reports"
	c.Policy.Workers = 4
	c.API.Addr = ":8080"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("SIGNOFF_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("SIGNOFF_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Policy.Workers = n
		}
	}
	if v := os.Getenv("SIGNOFF_API_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("SIGNOFF_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SIGNOFF_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return c, nil
}

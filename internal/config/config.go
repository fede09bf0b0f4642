package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/goccy/go-yaml"
)

// Duration decodes YAML values like "30s" or "3m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(b []byte) error {
	var raw string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %v", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config carries every injected path and knob for a pipeline run. Nothing
// here is read from process-wide state after Load returns; commands pass
// the resolved values down explicitly.
type Config struct {
	CachePath string   `yaml:"cache_path"` // feed reader sqlite cache
	URLFile   string   `yaml:"url_file"`   // curated flat file, one URL per line
	FeedFile  string   `yaml:"feed_file"`  // feed reader urls file (yt_dl markers)
	OutputDir string   `yaml:"output_dir"`
	Workers   int      `yaml:"workers"`
	Domain    string   `yaml:"domain"`  // album host suffix, e.g. bandcamp.com
	Segment   string   `yaml:"segment"` // fixed path segment, e.g. album
	UserAgent string   `yaml:"user_agent"`
	Timeout   Duration `yaml:"timeout"`
	MaxAge    int      `yaml:"max_age"` // days; harvest cutoff for scraped sources
}

func defaults() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	nbDir := filepath.Join(home, ".config", "newsboat")
	return &Config{
		CachePath: filepath.Join(nbDir, "cache.db"),
		FeedFile:  filepath.Join(nbDir, "urls"),
		OutputDir: "downloads",
		Workers:   4,
		Domain:    "bandcamp.com",
		Segment:   "album",
		Timeout:   Duration(3 * time.Minute),
		MaxAge:    7,
	}
}

// DefaultConfigPath returns the well-known config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cratedl.yaml"
	}
	return filepath.Join(home, ".config", "cratedl", "config.yaml")
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// Pattern builds the album-URL filter from the configured domain and path
// segment: https://<subdomain>.<domain>/<segment>/<slug>.
func (c *Config) Pattern() *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`https://[^.]+\.%s/%s/[-\w]+`,
		regexp.QuoteMeta(c.Domain), regexp.QuoteMeta(c.Segment)))
}

// EnsureOutputDir creates the output directory if needed.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %v", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"m3u-helper/utils"
)

const (
	// FormattedSuffix marks generated playlists so they are never rescanned.
	FormattedSuffix = "_formated"
	// MergedFileName is the destination of the merge-all operation.
	MergedFileName = "all_in_one_formated.m3u"
	// LockFilePrefix names the per-directory lock files kept in os.TempDir.
	LockFilePrefix = "m3u-helper-"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	WorkDir              string        `yaml:"workDir"`
	CheckConnectivity    bool          `yaml:"checkConnectivity"`
	SortWithinCategory   bool          `yaml:"sortWithinCategory"`
	VerboseConsoleOutput bool          `yaml:"verboseConsoleOutput"`
	CheckTimeout         time.Duration `yaml:"checkTimeout"`
	RequestTimeout       time.Duration `yaml:"requestTimeout"`
	CheckWorkers         int           `yaml:"checkWorkers"`
	CacheTTL             time.Duration `yaml:"cacheTTL"`
	UserAgent            string        `yaml:"userAgent"`
}

// Default returns the configuration used when nothing else is provided.
// The working directory is the process cwd.
func Default() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return &Config{
		WorkDir:              wd,
		CheckConnectivity:    false,
		SortWithinCategory:   false,
		VerboseConsoleOutput: true,
		CheckTimeout:         2 * time.Minute,
		RequestTimeout:       5 * time.Second,
		CheckWorkers:         runtime.NumCPU() * 2,
		CacheTTL:             10 * time.Minute,
		UserAgent:            utils.GetEnv("USER_AGENT"),
	}
}

// Load builds a Config from defaults, then the YAML file at path (if path is
// not empty), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	boolEnvs := []struct {
		key    string
		target *bool
	}{
		{"M3U_HELPER_CHECK", &c.CheckConnectivity},
		{"M3U_HELPER_SORT", &c.SortWithinCategory},
		{"M3U_HELPER_VERBOSE", &c.VerboseConsoleOutput},
	}

	for _, env := range boolEnvs {
		value, ok := os.LookupEnv(env.key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, env.key, value)
		}
		*env.target = parsed
	}

	if dir := strings.TrimSpace(os.Getenv("M3U_HELPER_DIR")); dir != "" {
		c.WorkDir = dir
	}

	return nil
}

// Validate normalizes the working directory and rejects unusable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.WorkDir) == "" {
		return fmt.Errorf("%w: workDir is empty", ErrInvalidConfig)
	}

	abs, err := filepath.Abs(c.WorkDir)
	if err != nil {
		return fmt.Errorf("%w: workDir %q: %v", ErrInvalidConfig, c.WorkDir, err)
	}
	c.WorkDir = abs

	if c.CheckTimeout <= 0 {
		return fmt.Errorf("%w: checkTimeout must be positive", ErrInvalidConfig)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: requestTimeout must be positive", ErrInvalidConfig)
	}
	if c.CheckWorkers <= 0 {
		return fmt.Errorf("%w: checkWorkers must be positive", ErrInvalidConfig)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cacheTTL must not be negative", ErrInvalidConfig)
	}
	if c.UserAgent == "" {
		c.UserAgent = utils.GetEnv("USER_AGENT")
	}

	return nil
}

// PathFor resolves a file name inside the working directory.
func (c *Config) PathFor(name string) string {
	return filepath.Join(c.WorkDir, name)
}

func (c *Config) MergedPath() string {
	return c.PathFor(MergedFileName)
}

// LockPath is the lock held while a run writes into WorkDir. It lives in the
// temp directory so playlist directories stay clean; the name is derived from
// WorkDir so runs against the same directory share it.
func (c *Config) LockPath() string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+c.WorkDir))
	return filepath.Join(os.TempDir(), LockFilePrefix+id.String()+".lock")
}

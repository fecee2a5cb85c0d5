// Package config loads hexseek settings from a TOML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mhr3/hexseek/internal/logging"
	"github.com/mhr3/hexseek/needle"
)

// Config is the full set of settings.
type Config struct {
	Search SearchConfig `toml:"search"`
	Output OutputConfig `toml:"output"`
	TUI    TUIConfig    `toml:"tui"`
	Watch  WatchConfig  `toml:"watch"`
	S3     S3Config     `toml:"s3"`
	MinIO  MinIOConfig  `toml:"minio"`
}

type SearchConfig struct {
	// Endian is the default byte order for numeric values: "le" or "be".
	Endian         string `toml:"endian"`
	// ResultsPerTick caps how many offsets are drained per frame or tick.
	ResultsPerTick int    `toml:"results_per_tick"`
	// Buffer is the result channel capacity of a session.
	Buffer         int    `toml:"buffer"`
	// Unbounded lets the worker queue offsets without limit.
	Unbounded      bool   `toml:"unbounded"`
	// ChunkSize is how many bytes are scanned between stop checks.
	ChunkSize      int    `toml:"chunk_size"`
	// Parallel bounds how many sources are searched at once.
	Parallel       int    `toml:"parallel"`
}

type OutputConfig struct {
	LogLevel  string        `toml:"log_level"`
	LogFormat string        `toml:"log_format"`
	// Interval paces plain-mode output.
	Interval  time.Duration `toml:"interval"`
}

type TUIConfig struct {
	PageSize     int           `toml:"page_size"`
	PreviewBytes int           `toml:"preview_bytes"`
	Frame        time.Duration `toml:"frame"`
}

type WatchConfig struct {
	Debounce time.Duration `toml:"debounce"`
}

type S3Config struct {
	Region      string `toml:"region"`
	Concurrency int    `toml:"concurrency"`
}

type MinIOConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Endian:         "le",
			ResultsPerTick: 100_000,
			Buffer:         1024,
			ChunkSize:      4 << 20,
			Parallel:       4,
		},
		Output: OutputConfig{
			LogLevel:  "warn",
			LogFormat: "text",
			Interval:  50 * time.Millisecond,
		},
		TUI: TUIConfig{
			PageSize:     20,
			PreviewBytes: 16,
			Frame:        time.Second / 30,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		S3: S3Config{
			Concurrency: 5,
		},
		MinIO: MinIOConfig{
			UseSSL: true,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ApplyEnvOverrides applies HEXSEEK_* environment variables. Malformed
// numbers are left for Validate to report.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("HEXSEEK_ENDIAN"); v != "" {
		c.Search.Endian = v
	}
	if v := os.Getenv("HEXSEEK_LOG_LEVEL"); v != "" {
		c.Output.LogLevel = v
	}
	if v := os.Getenv("HEXSEEK_RESULTS_PER_TICK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			n = -1
		}
		c.Search.ResultsPerTick = n
	}
	if v := os.Getenv("HEXSEEK_S3_REGION"); v != "" {
		c.S3.Region = v
	}
	if v := os.Getenv("HEXSEEK_MINIO_ENDPOINT"); v != "" {
		c.MinIO.Endpoint = v
	}
	if v := os.Getenv("HEXSEEK_MINIO_ACCESS_KEY"); v != "" {
		c.MinIO.AccessKey = v
	}
	if v := os.Getenv("HEXSEEK_MINIO_SECRET_KEY"); v != "" {
		c.MinIO.SecretKey = v
	}
	if v := os.Getenv("HEXSEEK_MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.MinIO.UseSSL = b
		}
	}
}

// ValidationError is one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every invalid setting.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := needle.ParseEndianness(c.Search.Endian); err != nil {
		add("search.endian", "invalid byte order %q, must be le or be", c.Search.Endian)
	}
	if c.Search.ResultsPerTick <= 0 {
		add("search.results_per_tick", "must be positive")
	}
	if c.Search.Buffer < 0 {
		add("search.buffer", "must not be negative")
	}
	if c.Search.ChunkSize <= 0 {
		add("search.chunk_size", "must be positive")
	}
	if c.Search.Parallel <= 0 {
		add("search.parallel", "must be positive")
	}
	if _, err := logging.ParseLevel(c.Output.LogLevel); err != nil {
		add("output.log_level", "invalid level %q", c.Output.LogLevel)
	}
	switch strings.ToLower(c.Output.LogFormat) {
	case "text", "json":
	default:
		add("output.log_format", "invalid format %q, must be text or json", c.Output.LogFormat)
	}
	if c.Output.Interval <= 0 {
		add("output.interval", "must be positive")
	}
	if c.TUI.PageSize <= 0 {
		add("tui.page_size", "must be positive")
	}
	if c.TUI.PreviewBytes < 0 {
		add("tui.preview_bytes", "must not be negative")
	}
	if c.TUI.Frame <= 0 {
		add("tui.frame", "must be positive")
	}
	if c.Watch.Debounce < 0 {
		add("watch.debounce", "must not be negative")
	}
	if c.S3.Concurrency <= 0 {
		add("s3.concurrency", "must be positive")
	}
	if (c.MinIO.AccessKey == "") != (c.MinIO.SecretKey == "") {
		add("minio", "access_key and secret_key must be set together")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Order returns the configured default byte order. Call after Validate.
func (c *Config) Order() needle.Endianness {
	e, _ := needle.ParseEndianness(c.Search.Endian)
	return e
}

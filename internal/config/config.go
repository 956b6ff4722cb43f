// Package config provides unified configuration loading for the service.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Extraction    ExtractionConfig    `yaml:"extraction"`
	Translation   TranslationConfig   `yaml:"translation"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	MaxUploadBytes   int64         `yaml:"max_upload_bytes"`
}

// ExtractionConfig holds PDF extraction settings.
type ExtractionConfig struct {
	DPI int `yaml:"dpi"`
	// NativeTextThreshold is the minimum count of non-whitespace characters
	// for a page's native text to bypass OCR.
	NativeTextThreshold int    `yaml:"native_text_threshold"`
	OCRLanguage         string `yaml:"ocr_language"`
}

// TranslationConfig holds translation settings.
type TranslationConfig struct {
	TargetLanguage string `yaml:"target_language"`
	MaxChunkLen    int    `yaml:"max_chunk_len"`
	Concurrency    int    `yaml:"concurrency"`
	Endpoint       string `yaml:"endpoint"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             5000,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     10 * time.Minute,
			IdleTimeout:      2 * time.Minute,
			RequestTimeout:   10 * time.Minute,
			GracefulShutdown: 15 * time.Second,
			MaxUploadBytes:   64 * 1024 * 1024,
		},
		Extraction: ExtractionConfig{
			DPI:                 300,
			NativeTextThreshold: 40,
			OCRLanguage:         "eng",
		},
		Translation: TranslationConfig{
			TargetLanguage: "zh-CN",
			MaxChunkLen:    4500,
			Concurrency:    1,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Load reads configuration from an optional YAML file, then applies
// environment variable overrides. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Extraction.DPI < 1 || c.Extraction.DPI > 1200 {
		return fmt.Errorf("dpi must be between 1 and 1200, got %d", c.Extraction.DPI)
	}

	if c.Extraction.NativeTextThreshold < 0 {
		return fmt.Errorf("native_text_threshold must not be negative, got %d", c.Extraction.NativeTextThreshold)
	}

	if c.Extraction.OCRLanguage == "" {
		return fmt.Errorf("ocr_language must not be empty")
	}

	if c.Translation.MaxChunkLen < 1 {
		return fmt.Errorf("max_chunk_len must be positive, got %d", c.Translation.MaxChunkLen)
	}

	if c.Translation.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Translation.Concurrency)
	}

	if c.Translation.TargetLanguage == "" {
		return fmt.Errorf("target_language must not be empty")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("EXTRACTION_DPI"); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil {
			cfg.Extraction.DPI = dpi
		}
	}

	if v := os.Getenv("OCR_LANGUAGE"); v != "" {
		cfg.Extraction.OCRLanguage = v
	}

	if v := os.Getenv("NATIVE_TEXT_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Extraction.NativeTextThreshold = n
		}
	}

	if v := os.Getenv("TARGET_LANGUAGE"); v != "" {
		cfg.Translation.TargetLanguage = v
	}

	if v := os.Getenv("MAX_CHUNK_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Translation.MaxChunkLen = n
		}
	}

	if v := os.Getenv("TRANSLATE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Translation.Concurrency = n
		}
	}

	if v := os.Getenv("TRANSLATE_ENDPOINT"); v != "" {
		cfg.Translation.Endpoint = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscode()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.BackupDir, err = expandPath(c.Paths.BackupDir); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscode() {
	c.Transcode.Encoder = strings.ToLower(strings.TrimSpace(c.Transcode.Encoder))
	if c.Transcode.Encoder == "" {
		c.Transcode.Encoder = defaultEncoder
	}
	c.Transcode.Preset = strings.ToLower(strings.TrimSpace(c.Transcode.Preset))
	if c.Transcode.Preset == "" {
		c.Transcode.Preset = defaultPreset
	}
	c.Transcode.Container = strings.ToLower(strings.TrimSpace(c.Transcode.Container))
	if c.Transcode.Container == "" {
		c.Transcode.Container = defaultContainer
	}
	if c.Transcode.FallbackBitrateKbps <= 0 {
		c.Transcode.FallbackBitrateKbps = defaultFallbackBitrateKbps
	}
	if c.Transcode.MaxParallelJobs == 0 {
		c.Transcode.MaxParallelJobs = defaultMaxParallelJobs
	}
	if len(c.Transcode.Extensions) == 0 {
		c.Transcode.Extensions = defaultExtensions()
	}
	normalized := make([]string, 0, len(c.Transcode.Extensions))
	for _, ext := range c.Transcode.Extensions {
		ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if ext != "" {
			normalized = append(normalized, ext)
		}
	}
	c.Transcode.Extensions = normalized
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

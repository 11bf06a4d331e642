package config

import (
	"fmt"
	"strings"
)

var (
	validEncoders   = []string{"auto", "nvidia", "intel", "amd", "cpu"}
	validPresets    = []string{"default", "gpu-hq", "smaller", "faster", "lossless"}
	validContainers = []string{"mp4", "mkv"}
	validLogFormats = []string{"console", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
)

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return fmt.Errorf("paths.source_dir must be set")
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		return fmt.Errorf("paths.backup_dir must be set")
	}
	if c.Paths.BackupDir == c.Paths.SourceDir {
		return fmt.Errorf("paths.backup_dir must differ from paths.source_dir")
	}
	if !contains(validEncoders, c.Transcode.Encoder) {
		return fmt.Errorf("transcode.encoder %q invalid (expected one of %s)", c.Transcode.Encoder, strings.Join(validEncoders, ", "))
	}
	if !contains(validPresets, c.Transcode.Preset) {
		return fmt.Errorf("transcode.preset %q invalid (expected one of %s)", c.Transcode.Preset, strings.Join(validPresets, ", "))
	}
	if !contains(validContainers, c.Transcode.Container) {
		return fmt.Errorf("transcode.container %q invalid (expected one of %s)", c.Transcode.Container, strings.Join(validContainers, ", "))
	}
	if c.Transcode.MaxParallelJobs < 1 || c.Transcode.MaxParallelJobs > MaxParallelJobsLimit {
		return fmt.Errorf("transcode.max_parallel_jobs must be between 1 and %d, got %d", MaxParallelJobsLimit, c.Transcode.MaxParallelJobs)
	}
	if c.Transcode.FallbackBitrateKbps < 300 {
		return fmt.Errorf("transcode.fallback_bitrate_kbps must be at least 300, got %d", c.Transcode.FallbackBitrateKbps)
	}
	if len(c.Transcode.Extensions) == 0 {
		return fmt.Errorf("transcode.extensions must not be empty")
	}
	if !contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format %q invalid (expected one of %s)", c.Logging.Format, strings.Join(validLogFormats, ", "))
	}
	if !contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level %q invalid (expected one of %s)", c.Logging.Level, strings.Join(validLogLevels, ", "))
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

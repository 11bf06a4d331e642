package config

const (
	defaultSourceDir           = "~/videos"
	defaultBackupDir           = "~/.local/share/filmpress/backups"
	defaultLogDir              = "~/.local/share/filmpress/logs"
	defaultHistoryPath         = "~/.local/share/filmpress/history.db"
	defaultEncoder             = "auto"
	defaultPreset              = "default"
	defaultFallbackBitrateKbps = 3000
	defaultContainer           = "mp4"
	defaultMaxParallelJobs     = 2
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// MaxParallelJobsLimit is the upper bound on concurrent encode jobs. The
// bound exists to avoid oversubscribing a single shared GPU or CPU.
const MaxParallelJobsLimit = 8

func defaultExtensions() []string {
	return []string{"mp4", "mkv", "mov", "avi", "wmv", "flv", "m4v", "ts", "webm"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			BackupDir: defaultBackupDir,
			LogDir:    defaultLogDir,
		},
		Transcode: Transcode{
			Encoder:             defaultEncoder,
			Preset:              defaultPreset,
			FallbackBitrateKbps: defaultFallbackBitrateKbps,
			Container:           defaultContainer,
			MaxParallelJobs:     defaultMaxParallelJobs,
			SkipEncoded:         true,
			PreserveTimestamps:  true,
			DeleteSource:        true,
			Extensions:          defaultExtensions(),
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

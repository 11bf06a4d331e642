package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"filmpress/internal/capability"
	"filmpress/internal/config"
	"filmpress/internal/deps"
	"filmpress/internal/encoder"
	"filmpress/internal/history"
	"filmpress/internal/logging"
	"filmpress/internal/pipeline"
	"filmpress/internal/report"
)

type convertFlags struct {
	source             string
	backupDir          string
	dryRun             bool
	preserveTimestamps bool
	encoderChoice      string
	preset             string
	bitrateKbps        int
	skipEncoded        bool
	container          string
	jobs               int
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Re-encode the video library to HEVC",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyConvertFlags(cmd, cfg, flags); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg, logger, flags.dryRun)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "", "Source directory to scan (overrides config)")
	cmd.Flags().StringVar(&flags.backupDir, "backup-dir", "", "Backup directory (overrides config)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report intended actions without touching any file")
	cmd.Flags().BoolVar(&flags.preserveTimestamps, "preserve-timestamps", true, "Carry the source creation time onto the output")
	cmd.Flags().StringVar(&flags.encoderChoice, "encoder", "", "Hardware encoder: auto, nvidia, intel, amd, or cpu")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "Quality preset: default, gpu-hq, smaller, faster, or lossless")
	cmd.Flags().IntVar(&flags.bitrateKbps, "bitrate", 0, "Fallback video bitrate in kbps")
	cmd.Flags().BoolVar(&flags.skipEncoded, "skip-encoded", true, "Skip files already encoded in HEVC")
	cmd.Flags().StringVar(&flags.container, "container", "", "Output container: mp4 or mkv")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "Max parallel encode jobs (1-8)")

	return cmd
}

// applyConvertFlags folds explicitly set flags over the loaded configuration
// and re-validates the result.
func applyConvertFlags(cmd *cobra.Command, cfg *config.Config, flags convertFlags) error {
	if cmd.Flags().Changed("source") {
		expanded, err := config.ExpandPath(flags.source)
		if err != nil {
			return err
		}
		cfg.Paths.SourceDir = expanded
	}
	if cmd.Flags().Changed("backup-dir") {
		expanded, err := config.ExpandPath(flags.backupDir)
		if err != nil {
			return err
		}
		cfg.Paths.BackupDir = expanded
	}
	if cmd.Flags().Changed("preserve-timestamps") {
		cfg.Transcode.PreserveTimestamps = flags.preserveTimestamps
	}
	if cmd.Flags().Changed("encoder") {
		cfg.Transcode.Encoder = strings.ToLower(strings.TrimSpace(flags.encoderChoice))
	}
	if cmd.Flags().Changed("preset") {
		cfg.Transcode.Preset = strings.ToLower(strings.TrimSpace(flags.preset))
	}
	if cmd.Flags().Changed("bitrate") {
		cfg.Transcode.FallbackBitrateKbps = flags.bitrateKbps
	}
	if cmd.Flags().Changed("skip-encoded") {
		cfg.Transcode.SkipEncoded = flags.skipEncoded
	}
	if cmd.Flags().Changed("container") {
		cfg.Transcode.Container = strings.ToLower(strings.TrimSpace(flags.container))
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Transcode.MaxParallelJobs = flags.jobs
	}
	return cfg.Validate()
}

func runConvert(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, dryRun bool) error {
	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := deps.Preflight(); err != nil {
		return err
	}

	caps := capability.Detect(runCtx, cfg.FFmpegBinary())
	choice, err := encoder.ParseChoice(cfg.Transcode.Encoder)
	if err != nil {
		return err
	}
	encoderID := encoder.Select(choice, caps)
	logger.Info("session ready",
		logging.Args(
			logging.String(logging.FieldComponent, "convert"),
			logging.String("encoder", encoderLabel(encoderID)),
			logging.Any("hardware", caps.Encoders()))...)

	paths, err := pipeline.Discover(cfg.Paths.SourceDir, cfg.Transcode.Extensions)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintln(out, "No candidate files found.")
		return nil
	}

	if dryRun {
		dry := pipeline.NewRunner(cfg, encoderID, logger).Plan(runCtx, paths)
		dry.Render(out)
		fmt.Fprintln(out, dry.Line())
		return nil
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	// Mirror the session into an append-only JSON log file per run.
	if logFile, fileErr := openRunLog(cfg); fileErr != nil {
		logger.Warn("run log unavailable",
			logging.Args(logging.Error(fileErr), logging.Alert("run_log_unavailable"))...)
	} else {
		defer logFile.Close()
		fileLogger, buildErr := logging.New(logging.Options{Format: "json", Level: cfg.Logging.Level, Writer: logFile})
		if buildErr == nil {
			logger = slog.New(logging.Fanout(logger.Handler(), fileLogger.Handler()))
		}
	}

	runner := pipeline.NewRunner(cfg, encoderID, logger)

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg)
		if err != nil {
			logger.Warn("history store unavailable",
				logging.Args(logging.Error(err), logging.Alert("history_unavailable"))...)
		} else {
			defer store.Close()
			runner.OnResult = historyRecorder(runCtx, store, cfg, logger)
		}
	}

	summary, outcomes := runner.Execute(runCtx, paths)
	report.RenderOutcomes(out, outcomes)
	fmt.Fprintln(out, summary.Line())

	if runCtx.Err() != nil {
		return runCtx.Err()
	}
	return nil
}

// historyRecorder persists each finished job; store failures degrade to a
// warning so a broken database never fails the run.
func historyRecorder(ctx context.Context, store *history.Store, cfg *config.Config, logger *slog.Logger) func(pipeline.Result) {
	return func(result pipeline.Result) {
		rec := history.Record{
			InputPath:   result.InputPath,
			OutputPath:  result.FinalPath,
			Encoder:     result.Encoder,
			Preset:      cfg.Transcode.Preset,
			Rate:        result.Rate,
			Success:     result.Success,
			UsedGPU:     result.UsedGPU,
			SourceBytes: result.SrcBytes,
			OutputBytes: result.OutBytes,
			Message:     strings.Join(result.Messages, "; "),
		}
		if result.Err != nil {
			rec.Message = result.Err.Error()
		}
		if err := store.RecordJob(ctx, rec); err != nil {
			logger.Warn("history write failed",
				logging.Args(logging.Error(err), logging.Alert("history_write_failed"))...)
		}
	}
}

func openRunLog(cfg *config.Config) (*os.File, error) {
	name := "convert-" + time.Now().Format("20060102-150405") + ".log"
	return os.OpenFile(filepath.Join(cfg.Paths.LogDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func encoderLabel(encoderID string) string {
	if encoderID == "" {
		return encoder.CPUEncoder
	}
	return encoderID
}

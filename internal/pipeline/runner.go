package pipeline

import (
	"context"
	"log/slog"

	"filmpress/internal/config"
	"filmpress/internal/logging"
	"filmpress/internal/planner"
	"filmpress/internal/report"
	"filmpress/internal/services"
)

// Runner drives one conversion run: probing candidates once each, applying
// the skip filter, planning bitrates, and scheduling jobs across the pool.
type Runner struct {
	cfg       *config.Config
	encoderID string
	preset    planner.Preset
	applier   *Applier
	pool      *Pool
	logger    *slog.Logger

	// OnResult, when set, observes every finished job after aggregation.
	// Used to feed the history store; its errors are the callee's problem.
	OnResult func(Result)
}

// NewRunner wires a runner from resolved configuration and the encoder ID
// chosen for this session (empty for CPU encoding).
func NewRunner(cfg *config.Config, encoderID string, logger *slog.Logger) *Runner {
	// Config validation already rejected unknown preset names.
	preset, _ := planner.ParsePreset(cfg.Transcode.Preset)
	alloc := &PathAllocator{}
	return &Runner{
		cfg:       cfg,
		encoderID: encoderID,
		preset:    preset,
		applier:   NewApplier(cfg.FFmpegBinary(), alloc, logger),
		pool:      NewPool(cfg.Transcode.MaxParallelJobs),
		logger:    logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Execute converts every candidate path and returns the aggregated summary
// plus the per-file outcomes in completion order.
func (r *Runner) Execute(ctx context.Context, paths []string) (report.Summary, []report.Outcome) {
	var summary report.Summary
	var outcomes []report.Outcome

	jobs := make([]Job, 0, len(paths))
	for _, path := range paths {
		asset := ProbeAsset(ctx, r.cfg.FFprobeBinary(), path)
		if r.cfg.Transcode.SkipEncoded && asset.AlreadyTarget() {
			r.logger.Info("skipping, already hevc",
				logging.Args(logging.String(logging.FieldSource, path))...)
			outcome := report.Outcome{InputPath: path, Skipped: true, SrcBytes: asset.SizeBytes}
			summary.Add(outcome)
			outcomes = append(outcomes, outcome)
			continue
		}
		jobs = append(jobs, r.buildJob(asset))
	}

	// A job failure never stops the batch, with one exception: an error
	// classed fatal for the run (the encoder binary vanishing mid-run)
	// cancels the remaining dispatch.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.pool.Run(runCtx, jobs, r.applier.Apply, func(result Result) {
		outcome := outcomeFromResult(result)
		summary.Add(outcome)
		outcomes = append(outcomes, outcome)
		r.logResult(result)
		if r.OnResult != nil {
			r.OnResult(result)
		}
		if services.IsFatalForRun(result.Err) {
			cancel()
		}
	})

	return summary, outcomes
}

// Plan walks the candidates without touching the filesystem and reports what
// an execute run would do, with size estimates where the probe allows.
func (r *Runner) Plan(ctx context.Context, paths []string) report.DryRun {
	var dry report.DryRun
	fallback := planner.Rate(r.cfg.Transcode.FallbackBitrateKbps)

	for _, path := range paths {
		asset := ProbeAsset(ctx, r.cfg.FFprobeBinary(), path)
		if r.cfg.Transcode.SkipEncoded && asset.AlreadyTarget() {
			dry.Add(report.DryRunItem{Path: path, Skipped: true, SrcBytes: asset.SizeBytes})
			continue
		}

		rate := planner.Plan(asset.BitRate, asset.Height, r.preset, fallback)
		item := report.DryRunItem{
			Path:     path,
			Encoder:  r.encoderID,
			Rate:     rate,
			SrcBytes: asset.SizeBytes,
		}
		if asset.DurationSeconds > 0 {
			item.EstimatedBytes = planner.EstimateOutputBytes(
				asset.DurationSeconds,
				planner.KbpsFromRate(rate),
				int(asset.AudioBitRate/1000))
		}
		dry.Add(item)
	}
	return dry
}

func (r *Runner) buildJob(asset MediaAsset) Job {
	fallback := planner.Rate(r.cfg.Transcode.FallbackBitrateKbps)
	return NewJob(asset, JobOptions{
		SourceRoot:         r.cfg.Paths.SourceDir,
		BackupDir:          r.cfg.Paths.BackupDir,
		Container:          r.cfg.Transcode.Container,
		Encoder:            r.encoderID,
		Rate:               planner.Plan(asset.BitRate, asset.Height, r.preset, fallback),
		Preset:             r.preset,
		PreserveTimestamps: r.cfg.Transcode.PreserveTimestamps,
		DeleteSource:       r.cfg.Transcode.DeleteSource,
	})
}

func (r *Runner) logResult(result Result) {
	attrs := []logging.Attr{
		logging.String(logging.FieldSource, result.InputPath),
		logging.String("encoder", result.Encoder),
		logging.Bool("gpu", result.UsedGPU),
	}
	if result.Err != nil {
		r.logger.Error("conversion failed",
			logging.Args(append(attrs, logging.Error(result.Err))...)...)
		return
	}
	r.logger.Info("conversion complete",
		logging.Args(append(attrs,
			logging.String("output", result.FinalPath),
			logging.Int64("source_bytes", result.SrcBytes),
			logging.Int64("output_bytes", result.OutBytes))...)...)
}

func outcomeFromResult(result Result) report.Outcome {
	return report.Outcome{
		InputPath: result.InputPath,
		FinalPath: result.FinalPath,
		Encoder:   result.Encoder,
		Success:   result.Success,
		UsedGPU:   result.UsedGPU,
		BackedUp:  result.BackedUp,
		Deleted:   result.Deleted,
		SrcBytes:  result.SrcBytes,
		OutBytes:  result.OutBytes,
		Err:       result.Err,
	}
}

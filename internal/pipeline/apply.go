package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"filmpress/internal/encoder"
	"filmpress/internal/fileutil"
	"filmpress/internal/logging"
	"filmpress/internal/services"
)

// Applier runs the safe-apply protocol for one job: verified backup, encode
// with in-job CPU fallback, atomic publish, conditional source delete, and
// timestamp carry-over. Every step that mutates the library happens only
// after the steps protecting the source have succeeded.
type Applier struct {
	FFmpegBinary string
	Alloc        *PathAllocator
	logger       *slog.Logger
}

// NewApplier wires an applier over the shared path allocator.
func NewApplier(ffmpegBinary string, alloc *PathAllocator, logger *slog.Logger) *Applier {
	return &Applier{
		FFmpegBinary: ffmpegBinary,
		Alloc:        alloc,
		logger:       logging.NewComponentLogger(logger, "apply"),
	}
}

// Apply executes the protocol for job. The returned result always describes
// how far the protocol got; Err is set only for failures that stopped it.
func (a *Applier) Apply(ctx context.Context, job Job) Result {
	result := Result{
		InputPath: job.InputPath,
		Rate:      job.Rate,
		SrcBytes:  job.SourceBytes,
	}

	// Source mtime is read up front: after a delete there is nothing left
	// to read, and the probed creation time may be absent.
	sourceModTime, _ := fileutil.ModTime(job.InputPath)

	if err := a.backup(job); err != nil {
		result.Err = err
		return result
	}
	result.BackedUp = true
	result.log("backup verified: " + job.BackupPath)

	encoderUsed, err := a.encode(ctx, job, &result)
	if err != nil {
		_ = fileutil.RemoveIfExists(job.TempOutputPath)
		result.Err = err
		return result
	}
	result.Encoder = encoderUsed
	result.UsedGPU = encoderUsed != encoder.CPUEncoder
	result.log("encoded with " + encoderUsed)

	finalPath, err := a.publish(job, &result)
	if err != nil {
		_ = fileutil.RemoveIfExists(job.TempOutputPath)
		result.Err = err
		return result
	}
	result.FinalPath = finalPath
	result.Published = true
	result.log("published: " + finalPath)
	if info, statErr := os.Stat(finalPath); statErr == nil {
		result.OutBytes = info.Size()
	}

	if job.DeleteSource && finalPath != job.InputPath {
		if err := os.Remove(job.InputPath); err != nil {
			// Delete failure leaves both files on disk; never fatal.
			result.log(fmt.Sprintf("source not deleted: %v", err))
			a.logger.Warn("source delete failed",
				logging.Args(
					logging.String(logging.FieldSource, job.InputPath),
					logging.Error(err),
					logging.Alert("source_delete_failed"))...)
		} else {
			result.Deleted = true
			result.log("source deleted")
		}
	}

	if job.PreserveTimestamps {
		a.carryTimestamp(job, finalPath, sourceModTime, &result)
	}

	result.Success = true
	return result
}

// backup copies the source into the backup directory and verifies the copy
// byte for byte. Nothing downstream runs until this succeeds.
func (a *Applier) backup(job Job) error {
	if err := os.MkdirAll(filepath.Dir(job.BackupPath), 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "apply", "backup", "create backup directory", err)
	}
	if err := fileutil.CopyFileVerified(job.InputPath, job.BackupPath); err != nil {
		return services.Wrap(services.ErrTransient, "apply", "backup", "verified copy", err)
	}
	a.logger.Info("backup verified",
		logging.Args(
			logging.String(logging.FieldSource, job.InputPath),
			logging.String("backup", job.BackupPath))...)
	return nil
}

// encode writes the temporary output, trying the hardware encoder first and
// falling back to libx265 inside the same job. Returns the encoder that
// produced the output.
func (a *Applier) encode(ctx context.Context, job Job, result *Result) (string, error) {
	if job.Encoder != "" {
		args := encoder.BuildArgs(job.InputPath, job.TempOutputPath, job.Encoder, job.Preset, job.Rate, job.Container)
		run, err := encoder.Run(ctx, a.FFmpegBinary, args)
		if err != nil {
			return "", services.Wrap(services.ErrExternalTool, "apply", "encode", "start ffmpeg", err)
		}
		if run.Success() && producedOutput(job.TempOutputPath) {
			return job.Encoder, nil
		}
		if ctx.Err() != nil {
			return "", services.Wrap(services.ErrTimeout, "apply", "encode", "canceled", ctx.Err())
		}

		// A partial temp from the failed attempt must not pollute the retry.
		_ = fileutil.RemoveIfExists(job.TempOutputPath)
		result.log(fmt.Sprintf("%s failed (exit %d), retrying with %s", job.Encoder, run.ExitCode, encoder.CPUEncoder))
		a.logger.Warn("hardware encode failed, falling back to cpu",
			logging.Args(
				logging.String(logging.FieldSource, job.InputPath),
				logging.String("encoder", job.Encoder),
				logging.Int("exit_code", run.ExitCode))...)
	}

	args := encoder.BuildArgs(job.InputPath, job.TempOutputPath, "", job.Preset, job.Rate, job.Container)
	run, err := encoder.Run(ctx, a.FFmpegBinary, args)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "apply", "encode", "start ffmpeg", err)
	}
	if !run.Success() || !producedOutput(job.TempOutputPath) {
		return "", services.Wrap(services.ErrTransient, "apply", "encode",
			fmt.Sprintf("%s exited %d", encoder.CPUEncoder, run.ExitCode), nil)
	}
	return encoder.CPUEncoder, nil
}

// publish claims a collision-free final path and moves the temp there in one
// rename. The temp lives in the same directory, so the rename is atomic.
func (a *Applier) publish(job Job, result *Result) (string, error) {
	finalPath, err := a.Alloc.Allocate(job.OutputDir, job.BaseName, "."+job.Container)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "apply", "publish", "allocate final path", err)
	}
	if err := os.Rename(job.TempOutputPath, finalPath); err != nil {
		a.Alloc.Release(finalPath)
		return "", services.Wrap(services.ErrTransient, "apply", "publish", "rename into place", err)
	}
	if finalPath != filepath.Join(job.OutputDir, job.BaseName+"."+job.Container) {
		result.log("output name adjusted to avoid collision: " + filepath.Base(finalPath))
	}
	return finalPath, nil
}

// carryTimestamp stamps the published file with the probed creation time, or
// the source's old modification time when the container carried none.
func (a *Applier) carryTimestamp(job Job, finalPath string, sourceModTime time.Time, result *Result) {
	ts := job.SourceCreation
	if ts.IsZero() {
		ts = sourceModTime
	}
	if ts.IsZero() {
		return
	}
	if err := fileutil.ApplyTimestamp(finalPath, ts); err != nil {
		result.log(fmt.Sprintf("timestamp not applied: %v", err))
		a.logger.Warn("timestamp carry-over failed",
			logging.Args(
				logging.String(logging.FieldSource, job.InputPath),
				logging.Error(err))...)
		return
	}
	result.log("timestamp applied: " + ts.Format(time.RFC3339))
}

func producedOutput(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

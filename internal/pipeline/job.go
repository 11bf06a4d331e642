package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"filmpress/internal/planner"
)

// Job is the immutable descriptor for one conversion. It is created at
// dispatch time and destroyed after result collection.
type Job struct {
	InputPath      string
	BackupPath     string
	TempOutputPath string
	OutputDir      string
	BaseName       string
	Container      string
	// Encoder is the hardware encoder ID; empty means CPU encoding.
	Encoder            string
	Rate               string
	Preset             planner.Preset
	PreserveTimestamps bool
	DeleteSource       bool
	SourceBytes        int64
	// SourceCreation is the probed container creation time; zero when the
	// probe had none, in which case the protocol falls back to the source
	// file's modification time.
	SourceCreation time.Time
}

// JobOptions carries the run-level settings a job descriptor combines with
// one asset.
type JobOptions struct {
	// SourceRoot is the directory the run scans; backups mirror the source
	// path relative to it so equal base names in different subdirectories
	// never share a backup path.
	SourceRoot         string
	BackupDir          string
	Container          string
	Encoder            string
	Rate               string
	Preset             planner.Preset
	PreserveTimestamps bool
	DeleteSource       bool
}

// NewJob builds the descriptor for one asset. The temporary output lives in
// the output directory so the publish rename stays on one filesystem; its
// name embeds a UUID so concurrent jobs never collide on temps.
func NewJob(asset MediaAsset, opts JobOptions) Job {
	dir := filepath.Dir(asset.Path)
	base := filepath.Base(asset.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}

	return Job{
		InputPath:          asset.Path,
		BackupPath:         filepath.Join(opts.BackupDir, backupRelPath(opts.SourceRoot, asset.Path)),
		TempOutputPath:     filepath.Join(dir, ".filmpress-"+uuid.NewString()+"."+opts.Container),
		OutputDir:          dir,
		BaseName:           stem,
		Container:          opts.Container,
		Encoder:            opts.Encoder,
		Rate:               opts.Rate,
		Preset:             opts.Preset,
		PreserveTimestamps: opts.PreserveTimestamps,
		DeleteSource:       opts.DeleteSource,
		SourceBytes:        asset.SizeBytes,
		SourceCreation:     asset.CreationTime,
	}
}

// backupRelPath mirrors the source tree under the backup root. Inputs outside
// the root (or with no root configured) fall back to the base name.
func backupRelPath(sourceRoot, inputPath string) string {
	if sourceRoot == "" {
		return filepath.Base(inputPath)
	}
	rel, err := filepath.Rel(sourceRoot, inputPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Base(inputPath)
	}
	return rel
}

// Result is the transient outcome of one job, merged into the run summary by
// the aggregator.
type Result struct {
	InputPath string
	FinalPath string
	Encoder   string
	Rate      string
	Success   bool
	UsedGPU   bool
	BackedUp  bool
	Published bool
	Deleted   bool
	SrcBytes  int64
	OutBytes  int64
	Messages  []string
	Err       error
}

func (r *Result) log(message string) {
	r.Messages = append(r.Messages, message)
}

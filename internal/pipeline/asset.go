package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filmpress/internal/media/ffprobe"
)

// TargetCodec is the conversion target. Files already in this codec are
// excluded by the skip filter.
const TargetCodec = "hevc"

// MediaAsset captures everything the pipeline needs to know about one
// candidate file. Read-only once discovered.
type MediaAsset struct {
	Path            string
	Ext             string
	SizeBytes       int64
	Codec           string
	BitRate         int64
	AudioBitRate    int64
	Width           int
	Height          int
	DurationSeconds float64
	CreationTime    time.Time
	Probed          bool
}

// ProbeAsset inspects path once and builds its asset record. Probe failure
// is per-file and non-fatal: the asset is returned with Probed=false and the
// planner falls back to the fixed bitrate.
func ProbeAsset(ctx context.Context, ffprobeBinary, path string) MediaAsset {
	asset := MediaAsset{
		Path: path,
		Ext:  strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")),
	}
	if info, err := os.Stat(path); err == nil {
		asset.SizeBytes = info.Size()
	}

	result, err := ffprobe.Inspect(ctx, ffprobeBinary, path)
	if err != nil {
		return asset
	}

	asset.Probed = true
	asset.Codec = result.VideoCodec()
	asset.BitRate = result.BitRate()
	asset.AudioBitRate = result.AudioBitRate()
	asset.DurationSeconds = result.DurationSeconds()
	if stream := result.VideoStream(); stream != nil {
		asset.Width = stream.Width
		asset.Height = stream.Height
	}
	if created, ok := result.CreationTime(); ok {
		asset.CreationTime = created
	}
	return asset
}

// AlreadyTarget reports whether the asset is already encoded in the target
// codec.
func (a MediaAsset) AlreadyTarget() bool {
	return a.Probed && a.Codec == TargetCodec
}

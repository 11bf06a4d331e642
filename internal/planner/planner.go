package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Preset names the quality presets the pipeline understands.
type Preset string

const (
	PresetDefault  Preset = "default"
	PresetGPUHQ    Preset = "gpu-hq"
	PresetSmaller  Preset = "smaller"
	PresetFaster   Preset = "faster"
	PresetLossless Preset = "lossless"
)

// ParsePreset validates a preset name.
func ParsePreset(value string) (Preset, error) {
	preset := Preset(strings.ToLower(strings.TrimSpace(value)))
	switch preset {
	case PresetDefault, PresetGPUHQ, PresetSmaller, PresetFaster, PresetLossless:
		return preset, nil
	case "":
		return PresetDefault, nil
	default:
		return "", fmt.Errorf("unknown preset %q", value)
	}
}

// MinRateKbps is the floor for any planned bitrate.
const MinRateKbps = 300

// Rate renders a kbps value as the rate string ffmpeg accepts.
func Rate(kbps int) string {
	if kbps < MinRateKbps {
		kbps = MinRateKbps
	}
	return strconv.Itoa(kbps) + "k"
}

// Plan computes the target video bitrate for one input.
//
// Only the default preset plans adaptively: the target is a resolution-scaled
// fraction of the probed source bitrate, floored at MinRateKbps. Every other
// preset returns the fallback rate unchanged, as do inputs whose bitrate or
// resolution could not be probed.
func Plan(sourceBitrateBps int64, height int, preset Preset, fallback string) string {
	if preset != PresetDefault {
		return fallback
	}
	if sourceBitrateBps <= 0 || height <= 0 {
		return fallback
	}
	factor := scaleFactor(height)
	kbps := int(math.Round(float64(sourceBitrateBps) * factor / 1000.0))
	return Rate(kbps)
}

func scaleFactor(height int) float64 {
	switch {
	case height <= 720:
		return 0.50
	case height <= 1080:
		return 0.60
	case height <= 1440:
		return 0.65
	default:
		return 0.70
	}
}

// KbpsFromRate parses a rate string like "6000k" back into kbps. Returns 0
// when the rate cannot be parsed.
func KbpsFromRate(rate string) int {
	trimmed := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(rate)), "k")
	if trimmed == "" {
		return 0
	}
	kbps, err := strconv.Atoi(trimmed)
	if err != nil || kbps < 0 {
		return 0
	}
	return kbps
}

// EstimateOutputBytes predicts the encoded file size for dry-run reporting:
// duration * (video + audio bitrate) / 8. Returns 0 when the duration or the
// video rate is unknown.
func EstimateOutputBytes(durationSeconds float64, videoKbps, audioKbps int) int64 {
	if durationSeconds <= 0 || videoKbps <= 0 {
		return 0
	}
	if audioKbps < 0 {
		audioKbps = 0
	}
	bits := durationSeconds * float64(videoKbps+audioKbps) * 1000.0
	return int64(bits / 8.0)
}

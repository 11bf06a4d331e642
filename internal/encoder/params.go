package encoder

import (
	"strconv"

	"filmpress/internal/capability"
	"filmpress/internal/planner"
)

// CPUEncoder is the software HEVC encoder used for CPU encoding and for the
// in-job fallback after a hardware failure.
const CPUEncoder = "libx265"

// Params maps an (encoder, preset) pair to concrete ffmpeg video parameters.
// The empty encoder ID means CPU encoding via libx265.
//
// Presets express intent, not literal flags: default is a bitrate-targeted
// encode with a ceiling, gpu-hq trades speed for quality (lookahead and
// B-frames where the encoder supports them), smaller and faster trade
// quality against size and speed in opposite directions, and lossless
// requests constant quality at zero quantization loss with no bitrate
// constraint at all.
func Params(encoderID string, preset planner.Preset, rate string) []string {
	switch encoderID {
	case capability.EncoderNVENC:
		return nvencParams(preset, rate)
	case capability.EncoderQSV:
		return qsvParams(preset, rate)
	case capability.EncoderAMF:
		return amfParams(preset, rate)
	default:
		return x265Params(preset, rate)
	}
}

func nvencParams(preset planner.Preset, rate string) []string {
	switch preset {
	case planner.PresetGPUHQ:
		return append(ceiling(rate),
			"-preset", "p7", "-rc", "vbr",
			"-rc-lookahead", "32", "-bf", "4", "-b_ref_mode", "middle", "-spatial-aq", "1")
	case planner.PresetSmaller:
		return []string{"-preset", "p6", "-rc", "vbr", "-cq", "32", "-b:v", "0"}
	case planner.PresetFaster:
		return append(ceiling(rate), "-preset", "p2", "-rc", "vbr")
	case planner.PresetLossless:
		return []string{"-preset", "p7", "-rc", "constqp", "-qp", "0"}
	default:
		return append(ceiling(rate), "-preset", "p5", "-rc", "vbr")
	}
}

func qsvParams(preset planner.Preset, rate string) []string {
	switch preset {
	case planner.PresetGPUHQ:
		return append(ceiling(rate), "-preset", "veryslow", "-look_ahead", "1", "-bf", "4")
	case planner.PresetSmaller:
		return []string{"-preset", "slower", "-global_quality", "32"}
	case planner.PresetFaster:
		return append(ceiling(rate), "-preset", "veryfast")
	case planner.PresetLossless:
		return []string{"-preset", "veryslow", "-global_quality", "1"}
	default:
		return append(ceiling(rate), "-preset", "medium")
	}
}

func amfParams(preset planner.Preset, rate string) []string {
	switch preset {
	case planner.PresetGPUHQ:
		return append(ceiling(rate), "-quality", "quality", "-rc", "vbr_peak", "-preanalysis", "1")
	case planner.PresetSmaller:
		return []string{"-quality", "quality", "-rc", "cqp", "-qp_i", "30", "-qp_p", "32"}
	case planner.PresetFaster:
		return append(ceiling(rate), "-quality", "speed", "-rc", "vbr_peak")
	case planner.PresetLossless:
		return []string{"-quality", "quality", "-rc", "cqp", "-qp_i", "0", "-qp_p", "0"}
	default:
		return append(ceiling(rate), "-quality", "balanced", "-rc", "vbr_peak")
	}
}

func x265Params(preset planner.Preset, rate string) []string {
	switch preset {
	case planner.PresetGPUHQ:
		return append(ceiling(rate), "-preset", "slow")
	case planner.PresetSmaller:
		return []string{"-preset", "slow", "-crf", "28"}
	case planner.PresetFaster:
		return []string{"-preset", "veryfast", "-b:v", rate}
	case planner.PresetLossless:
		return []string{"-preset", "medium", "-x265-params", "lossless=1"}
	default:
		return append(ceiling(rate), "-preset", "medium")
	}
}

// ceiling returns a target bitrate with a matching maxrate ceiling and a
// buffer sized at twice the target.
func ceiling(rate string) []string {
	kbps := planner.KbpsFromRate(rate)
	if kbps <= 0 {
		return []string{"-b:v", rate}
	}
	return []string{
		"-b:v", rate,
		"-maxrate", rate,
		"-bufsize", strconv.Itoa(kbps*2) + "k",
	}
}

// BuildArgs assembles the full ffmpeg argument list for one encode attempt.
// The video encoder and its preset parameters come from Params; audio is
// copied into mkv and re-encoded to AAC for mp4, whose stricter codec
// support makes copying arbitrary source audio unsafe.
func BuildArgs(inputPath, outputPath, encoderID string, preset planner.Preset, rate, container string) []string {
	videoCodec := encoderID
	if videoCodec == "" {
		videoCodec = CPUEncoder
	}

	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", inputPath,
		"-map", "0:v:0", "-map", "0:a?",
		"-c:v", videoCodec,
	}
	args = append(args, Params(encoderID, preset, rate)...)

	switch container {
	case "mkv":
		args = append(args, "-c:a", "copy")
	default:
		args = append(args, "-c:a", "aac", "-tag:v", "hvc1", "-movflags", "+faststart")
	}

	args = append(args, outputPath)
	return args
}

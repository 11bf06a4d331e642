package planner

import (
	"testing"
	"testing/quick"
)

func TestPlanAdaptiveTable(t *testing.T) {
	cases := []struct {
		name    string
		bitrate int64
		height  int
		want    string
	}{
		{"720p half", 8_000_000, 720, "4000k"},
		{"1080p sixty percent", 10_000_000, 1080, "6000k"},
		{"1440p", 10_000_000, 1440, "6500k"},
		{"above 1440 uses seventy percent", 10_000_000, 2000, "7000k"},
		{"rounding", 10_000_001, 1080, "6000k"},
		{"low source floors at 300k", 100_000, 1080, "300k"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Plan(tc.bitrate, tc.height, PresetDefault, "3000k")
			if got != tc.want {
				t.Fatalf("Plan(%d, %d) = %q, want %q", tc.bitrate, tc.height, got, tc.want)
			}
		})
	}
}

func TestPlanNonDefaultPresetReturnsFallback(t *testing.T) {
	for _, preset := range []Preset{PresetGPUHQ, PresetSmaller, PresetFaster, PresetLossless} {
		if got := Plan(10_000_000, 1080, preset, "2500k"); got != "2500k" {
			t.Fatalf("Plan with preset %q = %q, want fallback", preset, got)
		}
	}
}

func TestPlanUnknownProbeFallsBack(t *testing.T) {
	if got := Plan(0, 1080, PresetDefault, "3000k"); got != "3000k" {
		t.Fatalf("unknown bitrate: got %q", got)
	}
	if got := Plan(10_000_000, 0, PresetDefault, "3000k"); got != "3000k" {
		t.Fatalf("unknown height: got %q", got)
	}
}

func TestPlanNeverBelowFloor(t *testing.T) {
	property := func(bitrate int64, height int16) bool {
		if bitrate <= 0 || height <= 0 {
			return true
		}
		got := Plan(bitrate, int(height), PresetDefault, "3000k")
		return KbpsFromRate(got) >= MinRateKbps
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("floor property violated: %v", err)
	}
}

func TestPlanIsPure(t *testing.T) {
	first := Plan(9_876_543, 1080, PresetDefault, "3000k")
	for i := 0; i < 100; i++ {
		if got := Plan(9_876_543, 1080, PresetDefault, "3000k"); got != first {
			t.Fatalf("Plan not deterministic: %q != %q", got, first)
		}
	}
}

func TestKbpsFromRate(t *testing.T) {
	if got := KbpsFromRate("6000k"); got != 6000 {
		t.Fatalf("KbpsFromRate(6000k) = %d", got)
	}
	if got := KbpsFromRate("garbage"); got != 0 {
		t.Fatalf("KbpsFromRate(garbage) = %d", got)
	}
}

func TestEstimateOutputBytes(t *testing.T) {
	// 120 seconds at (6000 + 128) kbps = 120 * 6128000 / 8 bytes.
	want := int64(120 * 6128000 / 8)
	if got := EstimateOutputBytes(120, 6000, 128); got != want {
		t.Fatalf("EstimateOutputBytes = %d, want %d", got, want)
	}
	if got := EstimateOutputBytes(0, 6000, 128); got != 0 {
		t.Fatalf("expected 0 for unknown duration, got %d", got)
	}
	if got := EstimateOutputBytes(120, 0, 128); got != 0 {
		t.Fatalf("expected 0 for unknown video rate, got %d", got)
	}
}

func TestParsePreset(t *testing.T) {
	if preset, err := ParsePreset(" GPU-HQ "); err != nil || preset != PresetGPUHQ {
		t.Fatalf("ParsePreset(GPU-HQ) = %v, %v", preset, err)
	}
	if preset, err := ParsePreset(""); err != nil || preset != PresetDefault {
		t.Fatalf("ParsePreset(empty) = %v, %v", preset, err)
	}
	if _, err := ParsePreset("ultra"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

package report

import (
	"errors"
	"strings"
	"testing"
)

func TestSummaryCountsOutcomes(t *testing.T) {
	var s Summary
	s.Add(Outcome{Success: true, UsedGPU: true, BackedUp: true, Deleted: true, SrcBytes: 1000, OutBytes: 600})
	s.Add(Outcome{Success: true, UsedGPU: false, BackedUp: true, SrcBytes: 500, OutBytes: 400})
	s.Add(Outcome{Err: errors.New("encode failed"), BackedUp: true})
	s.Add(Outcome{Skipped: true})

	if s.Total != 3 {
		t.Fatalf("total = %d, want 3", s.Total)
	}
	if s.Encoded != 2 || s.GPU != 1 || s.CPU != 1 {
		t.Fatalf("encoded/gpu/cpu = %d/%d/%d, want 2/1/1", s.Encoded, s.GPU, s.CPU)
	}
	if s.Skipped != 1 || s.Errors != 1 {
		t.Fatalf("skipped/errors = %d/%d, want 1/1", s.Skipped, s.Errors)
	}
	if s.BackedUp != 3 || s.Deleted != 1 {
		t.Fatalf("backups/deleted = %d/%d, want 3/1", s.BackedUp, s.Deleted)
	}
	if s.SrcBytes != 1500 || s.OutBytes != 1000 {
		t.Fatalf("bytes = %d/%d, want 1500/1000", s.SrcBytes, s.OutBytes)
	}
	if s.SavedBytes() != 500 {
		t.Fatalf("saved = %d, want 500", s.SavedBytes())
	}
}

func TestSummaryPercentSavedZeroWhenEmpty(t *testing.T) {
	var s Summary
	if got := s.PercentSaved(); got != 0 {
		t.Fatalf("percent = %f, want 0", got)
	}
}

func TestSummaryLineContainsCounters(t *testing.T) {
	var s Summary
	s.Add(Outcome{Success: true, UsedGPU: true, SrcBytes: 2048, OutBytes: 1024})
	line := s.Line()
	for _, want := range []string{"files=1", "encoded=1", "gpu=1", "cpu=0", "saved=1.0KiB", "50.0%"} {
		if !strings.Contains(line, want) {
			t.Fatalf("summary line %q missing %q", line, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KiB"},
		{1536, "1.5KiB"},
		{5 * 1024 * 1024, "5.0MiB"},
		{-1024, "-1.0KiB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDryRunTotalsCountAllSourceBytes(t *testing.T) {
	var d DryRun
	d.Add(DryRunItem{Path: "a.mp4", SrcBytes: 1000, EstimatedBytes: 700})
	d.Add(DryRunItem{Path: "b.mp4", SrcBytes: 900})
	d.Add(DryRunItem{Path: "c.mp4", Skipped: true, SrcBytes: 400})

	totals := d.Totals()
	if totals.SrcBytes != 1900 {
		t.Fatalf("SrcBytes = %d, want 1900 (unestimated items still count)", totals.SrcBytes)
	}
	if totals.EstimatedSrcBytes != 1000 || totals.EstimatedBytes != 700 {
		t.Fatalf("estimated totals = %d/%d, want 1000/700", totals.EstimatedSrcBytes, totals.EstimatedBytes)
	}
	if totals.Unestimated != 1 {
		t.Fatalf("Unestimated = %d, want 1", totals.Unestimated)
	}

	line := d.Line()
	for _, want := range []string{"3 candidates", "on disk", "1 without estimate"} {
		if !strings.Contains(line, want) {
			t.Fatalf("dry-run line %q missing %q", line, want)
		}
	}
}

func TestRenderOutcomesIncludesRows(t *testing.T) {
	var buf strings.Builder
	RenderOutcomes(&buf, []Outcome{
		{InputPath: "/media/clip.mov", FinalPath: "/media/clip.mp4", Encoder: "hevc_nvenc", Success: true, UsedGPU: true, SrcBytes: 2048, OutBytes: 1024},
		{InputPath: "/media/other.avi", Err: errors.New("boom")},
	})
	out := buf.String()
	for _, want := range []string{"clip.mov", "hevc_nvenc", "encoded", "error"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

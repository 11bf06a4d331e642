package history

import (
	"context"
	"testing"

	"filmpress/internal/testsupport"
)

func mustOpen(t *testing.T) *Store {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithHistory())
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRecordAndRecentJobs(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	first := Record{
		InputPath:   "/media/a.mov",
		OutputPath:  "/media/a.mp4",
		Encoder:     "hevc_nvenc",
		Preset:      "default",
		Rate:        "6000k",
		Success:     true,
		UsedGPU:     true,
		SourceBytes: 1000,
		OutputBytes: 600,
	}
	if err := store.RecordJob(ctx, first); err != nil {
		t.Fatalf("RecordJob: %v", err)
	}
	second := Record{
		InputPath: "/media/b.avi",
		Encoder:   "libx265",
		Success:   false,
		Message:   "libx265 exited 1",
	}
	if err := store.RecordJob(ctx, second); err != nil {
		t.Fatalf("RecordJob: %v", err)
	}

	records, err := store.RecentJobs(ctx, 10)
	if err != nil {
		t.Fatalf("RecentJobs: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].InputPath != "/media/b.avi" || records[1].InputPath != "/media/a.mov" {
		t.Fatalf("unexpected ordering: %q then %q", records[0].InputPath, records[1].InputPath)
	}
	got := records[1]
	if !got.Success || !got.UsedGPU || got.Encoder != "hevc_nvenc" || got.Rate != "6000k" {
		t.Fatalf("record round-trip mismatch: %+v", got)
	}
	if got.SourceBytes != 1000 || got.OutputBytes != 600 {
		t.Fatalf("byte counters mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not preserved")
	}
}

func TestRecentJobsLimit(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.RecordJob(ctx, Record{InputPath: "/media/clip.mov", Success: true}); err != nil {
			t.Fatalf("RecordJob: %v", err)
		}
	}
	records, err := store.RecentJobs(ctx, 3)
	if err != nil {
		t.Fatalf("RecentJobs: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHistory())
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(cfg)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.RecentJobs(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentJobs: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d", len(records))
	}
}

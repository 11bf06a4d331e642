package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNewJobMirrorsSourceTreeInBackupPath(t *testing.T) {
	job := NewJob(MediaAsset{Path: "/library/shows/s1/clip.mov"}, JobOptions{
		SourceRoot: "/library",
		BackupDir:  "/backups",
		Container:  "mp4",
	})
	want := filepath.Join("/backups", "shows", "s1", "clip.mov")
	if job.BackupPath != want {
		t.Fatalf("BackupPath = %q, want %q", job.BackupPath, want)
	}
}

func TestNewJobBackupPathFallsBackToBaseName(t *testing.T) {
	cases := []struct {
		name string
		root string
		path string
	}{
		{"no root", "", "/media/clip.mov"},
		{"outside root", "/library", "/elsewhere/clip.mov"},
	}
	for _, tc := range cases {
		job := NewJob(MediaAsset{Path: tc.path}, JobOptions{
			SourceRoot: tc.root,
			BackupDir:  "/backups",
			Container:  "mp4",
		})
		if job.BackupPath != filepath.Join("/backups", "clip.mov") {
			t.Fatalf("%s: BackupPath = %q, want base-name fallback", tc.name, job.BackupPath)
		}
	}
}

func TestNewJobTempLivesBesideFinalLocation(t *testing.T) {
	job := NewJob(MediaAsset{Path: "/library/clip.mov"}, JobOptions{
		SourceRoot: "/library",
		BackupDir:  "/backups",
		Container:  "mkv",
	})
	if filepath.Dir(job.TempOutputPath) != "/library" {
		t.Fatalf("temp output %q not beside final location", job.TempOutputPath)
	}
	base := filepath.Base(job.TempOutputPath)
	if !strings.HasPrefix(base, ".filmpress-") || !strings.HasSuffix(base, ".mkv") {
		t.Fatalf("unexpected temp name %q", base)
	}
}

package pipeline

import (
	"path/filepath"
	"reflect"
	"testing"

	"filmpress/internal/testsupport"
)

func TestDiscoverFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.mp4"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "b.MOV"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "notes.txt"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "shows", "c.mkv"), 10)
	testsupport.WriteFile(t, filepath.Join(root, ".hidden.mp4"), 10)
	testsupport.WriteFile(t, filepath.Join(root, ".cache", "d.mp4"), 10)

	got, err := Discover(root, []string{"mp4", ".mov", "mkv"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.mp4"),
		filepath.Join(root, "b.MOV"),
		filepath.Join(root, "shows", "c.mkv"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Discover = %v, want %v", got, want)
	}
}

func TestDiscoverMissingRootFails(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "absent"), []string{"mp4"}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestDiscoverEmptyExtensionListMatchesNothing(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.mp4"), 10)
	got, err := Discover(root, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

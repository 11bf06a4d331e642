package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"filmpress/internal/services"
)

// Discover walks root and returns every regular file whose extension matches
// the candidate list, sorted for deterministic job ordering. Hidden files and
// in-flight temp outputs are never candidates.
func Discover(root string, extensions []string) ([]string, error) {
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			wanted[ext] = true
		}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if wanted[ext] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "discover", "walk source directory", err)
	}

	sort.Strings(paths)
	return paths, nil
}

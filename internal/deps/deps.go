// Package deps verifies the external binaries filmpress shells out to.
// A missing required tool aborts the run before any file is touched.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"filmpress/internal/services"
)

// Requirement defines an external dependency filmpress relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Required returns the binaries the transcoding pipeline cannot run without.
func Required() []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: "ffmpeg", Description: "Video encoder invoked per job"},
		{Name: "FFprobe", Command: "ffprobe", Description: "Media metadata probe"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Preflight checks all required binaries and returns a run-fatal error naming
// every missing one.
func Preflight() error {
	missing := make([]string, 0, 2)
	for _, status := range CheckBinaries(Required()) {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Command)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(
		services.ErrExternalTool,
		"deps",
		"preflight",
		fmt.Sprintf("required binaries missing: %s", strings.Join(missing, ", ")),
		nil,
	)
}

package encoder

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// ExecResult captures the observable outcome of one encoder invocation.
type ExecResult struct {
	ExitCode int
	Output   string
}

// Success reports whether the subprocess exited zero.
func (r ExecResult) Success() bool {
	return r.ExitCode == 0
}

// Run invokes the encoder binary and waits for it to finish. A non-zero exit
// is not an error here: the result carries the exit code and captured output
// and the caller decides whether to fall back or fail. The returned error is
// non-nil only when the process could not be started at all.
func Run(ctx context.Context, binary string, args []string) (ExecResult, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	cmd := commandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	result := ExecResult{Output: strings.TrimSpace(string(output))}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, fmt.Errorf("start %s: %w", binary, err)
}

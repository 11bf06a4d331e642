// Package ffprobe wraps the ffprobe binary and exposes typed accessors over
// its JSON output. The pipeline probes each candidate exactly once; the skip
// filter, bitrate planner, and dry-run estimator all read the same document.
package ffprobe

// Package capability probes the host once per run for available hardware
// HEVC encoders and installed GPU vendors. Detection failure is never an
// error; the pipeline degrades to CPU-only operation.
package capability

// Package encoder resolves the user's hardware encoder choice against probed
// capabilities, maps (encoder, preset) pairs to concrete ffmpeg parameters,
// and executes encode attempts as subprocesses. Only the process exit status
// and captured output are observed; no codec work happens in-process.
package encoder

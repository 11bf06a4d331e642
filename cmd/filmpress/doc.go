// Command filmpress converts a local video library to HEVC: it probes
// hardware encoder support, plans per-file bitrates, and re-encodes with a
// safety protocol that backs up and verifies before anything is deleted.
package main

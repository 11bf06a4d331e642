// Package services defines the error taxonomy shared by filmpress
// components. Sentinel markers classify failures so callers can decide
// between aborting the run, failing a single job, or downgrading to a
// warning.
package services

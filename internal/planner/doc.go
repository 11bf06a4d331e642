// Package planner computes the target video bitrate for one input and
// estimates dry-run output sizes. Plan is pure: identical inputs always
// produce the identical rate string.
package planner

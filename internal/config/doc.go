// Package config loads, normalizes, and validates the filmpress TOML
// configuration. All path fields are expanded to absolute paths before the
// rest of the program sees them.
package config

// Package config loads mcgen settings. Values come from the embedded
// defaults, then the user config file, then MCGEN_* environment variables,
// then explicit overrides such as command line flags. Later layers win.
package config

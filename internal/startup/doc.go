// Package startup loads configuration from the environment, validates the
// data and scratch directories, and tunes the runtime memory limit.
package startup

// Package logging provides leveled logging for the media studio server.
//
// The log level is read once from the DEBUG and LOG_LEVEL environment
// variables; Debug messages are suppressed unless explicitly enabled.
package logging

// Package handlers implements the HTTP API: media import and playback,
// project CRUD, and the enhancement pass-through.
package handlers

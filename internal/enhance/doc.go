// Package enhance calls an external AI enhancement and generation service.
//
// The service is optional: the rest of the application is fully functional
// without it, and callers are expected to handle its absence.
package enhance

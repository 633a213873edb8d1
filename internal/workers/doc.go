// Package workers sizes worker pools for parallel import work based on
// available CPUs, with an IMPORT_WORKERS override for constrained hosts.
package workers

// Package preflight provides readiness checks for the filesystem paths a
// migration run depends on.
//
// The migrate command calls RunAll after both library paths are resolved and
// before either database is opened. If any check fails the run stops, so a
// permissions problem surfaces before any title has been read or written.
package preflight

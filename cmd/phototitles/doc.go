// Package main hosts the phototitles CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration and logging once, then hands
// off to the internal packages: migrate runs the interactive title migration,
// check reports title coverage for a single library, and config scaffolds or
// validates the configuration file. Terminal rendering (tables, section
// headers, colour) lives here; the internal packages only report data.
package main

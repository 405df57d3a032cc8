// Package library opens iPhoto and Photos library databases and exposes the
// photo-version records stored in their RKVersion table.
//
// A Store holds a single SQLite connection and keeps a transaction open from
// Open until Commit, Rollback, or Close, so every title update made during a
// run is buffered and can be discarded as one batch. Stores never create
// database files and never change persistent pragmas: a run that ends in
// Rollback leaves the file byte-for-byte unchanged.
//
// Libraries disagree on how a missing title is stored. AbsentConvention
// captures that difference and maps it onto fixed SQL predicates; callers pick
// the convention explicitly instead of assembling query strings.
package library

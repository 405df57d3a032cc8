// Package titles implements the title migration passes between two photo
// libraries: a read-only inventory of title coverage, a copy of titles from
// an old library to a new one matched by version uuid, and a fill of the
// remaining absent titles from each version's file name.
//
// The passes only ever write titles that are absent under the destination's
// convention. Existing titles are never overwritten, so each pass is safe to
// repeat. Writes stay inside the destination store's open transaction; the
// caller decides whether to commit them.
package titles

// Package textutil turns arbitrary strings, such as library paths, into
// short tokens that are safe to use as file names.
package textutil

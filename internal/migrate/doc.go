// Package migrate drives one interactive title migration from an old photo
// library to a new one.
//
// A run resolves both library paths, checks file access, takes a lock on each
// library, optionally backs both databases up, and then walks the operator
// through the copy and fill passes with a confirmation before each. Every
// destination change stays in one transaction until the operator confirms
// the save; declining leaves both databases untouched.
//
// Terminal interaction is injected through Prompter and Reporter so the flow
// can be driven from tests without a terminal.
package migrate

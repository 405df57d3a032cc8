package titles

// Change is the destination state of one matched version, recorded in
// verbose mode whether or not the title was written.
type Change struct {
	UUID     string
	FileName string
	Before   string
	After    string
	Updated  bool
}

// Result counts the work done by one pass.
type Result struct {
	// Inspected is the number of candidate records read.
	Inspected int
	// Matched is the number of candidates that resolved to a destination record.
	Matched int
	// Updated is the number of destination titles written.
	Updated int
	Trace   []Change
}

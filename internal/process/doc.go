// Package process runs external programs synchronously for doccbuilder.
//
// A Command carries the program, its argument vector, working directory,
// extra environment and failure Policy. ExecRunner streams both output
// streams line by line into the logger while the program runs (and optionally
// echoes them raw), buffers stdout for the caller, and returns an *Error for a
// non-zero exit or, when the policy asks for it, for any stderr output.
package process

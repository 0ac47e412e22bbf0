// Package version contains information on the current version of the compiler.
// It is split from the main program for easy use.
package version

// Current is the string representing the current version of CPQ.
const Current = "0.1.0"

// Signature is the default line appended after the last quad of a compiled
// program and after the final diagnostic of a failed compilation. It marks
// output files as produced by this compiler even when the program itself is
// empty.
const Signature = "cpq " + Current

// Package dataio reads the newline-delimited, whitespace-separated text
// formats written by the lattice-Boltzmann simulator.
//
// It provides a [LineReader] that tracks line numbers for error reporting,
// token helpers that parse integers and floats, and the error taxonomy shared
// by every loader:
//
//   - [ErrParse]: malformed numeric token or wrong token count
//   - [ErrTruncated]: input ended in the middle of a record
//
// Parse failures are reported as [*ParseError], which carries the offending
// line number and unwraps to both the sentinel and the conversion error.
package dataio

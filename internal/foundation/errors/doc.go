// Package errors provides the classified error type used across doccbuilder.
//
// Every failure that reaches the command line is either a ClassifiedError or
// an error returned verbatim by an external program. Classification drives
// logging and lets callers distinguish configuration problems (raised before
// any subprocess runs) from process and filesystem failures.
//
// Example usage:
//
//	err := errors.ConfigError("input required and not supplied").
//		WithContext("input", "package-path").
//		Build()
package errors

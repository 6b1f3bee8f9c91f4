// Package pipeline implements the multi-stage jazzy documentation flow:
// install tools, resolve and introspect the package, extract per-target
// documentation with SourceKitten, combine it and render it with jazzy.
//
// Extraction is strictly sequential. SourceKitten drives a Swift build per
// target and concurrent builds corrupt the shared .build directory.
package pipeline

// Package docc compiles documentation options into DocC command-line flags.
//
// GenerationOptions is built once per run by the configuration normalizer.
// Compile is a pure function of those options and the probed Capabilities of
// the backend that will receive the flags: the swift-docc-plugin
// (`swift package generate-documentation`) or docc driven by xcodebuild.
// The two disagree on default indexing behavior and on whether
// `--output-path` is understood, and Compile bridges both.
package docc

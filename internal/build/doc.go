// Package build provides the canonical documentation generation flow for
// doccbuilder.
//
// A run reads its inputs, checks the host, picks a backend, probes the
// installed docc front end, compiles flags and finally invokes the generator
// exactly once. Every CLI command that generates documentation routes through
// Service so that validation always happens before any generator starts.
package build

// Package config reads doccbuilder inputs and normalizes them into a RunConfig.
//
// Inputs are looked up by name through a layered Lookup: INPUT_<NAME>
// environment variables first (the GitHub Actions convention), then an
// optional YAML file. A .env file, when present, is loaded into the process
// environment before any lookup. Inputs exposes typed accessors on top of a
// Lookup; Normalize is the single place where empty strings become absent
// values and relative paths become absolute.
package config

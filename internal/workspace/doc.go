// Package workspace manages the temporary directory a pipeline run stages
// intermediate files in. The directory is owned by exactly one run and is
// removed by Cleanup, which callers defer immediately after Create so that
// removal happens on success and failure alike.
package workspace

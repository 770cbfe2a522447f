// Package rewrite applies the removal pipeline to files: it expands file
// roots into tasks, runs them on a pool of workers, writes shortened files
// back in place or prints the result, and collects per-file errors.
package rewrite

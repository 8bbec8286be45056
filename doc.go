// Package cmdjen is a small framework for `go generate`-style code generators,
// plus the generators built on it.
//
// A generator is composed of jennies: named units that turn typed inputs into
// a [File]. Jennies are collected in a [JennyList], which runs them in order,
// applies postprocessors, and gathers the results into an [FS]. The FS is then
// either written to disk or verified against what is already on disk, so CI
// can detect stale generated files.
//
// The commands subpackage contains the command descriptor generator, which
// renders a commands.yml fragment for a plugin-hosting runtime from command
// declarations found in Go source. See cmd/cmdjen for the go:generate entry
// point.
package cmdjen

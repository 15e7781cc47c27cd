// Package app wires the pipeline together: it owns the application
// configuration, constructs the dual-sink logger, and runs the build-then-
// setup sequence over every configured run, aborting on the first failure.
package app

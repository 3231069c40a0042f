// Package release implements the lighter release tooling: a declarative
// package descriptor (.lighter-release.yaml) and a sequential build
// driver that invokes an external build tool for every declared package,
// natively and inside a container.
//
// The driver carries no scheduling logic. Builds run strictly one after
// another, state between iterations is only whatever artifacts the build
// tool leaves on disk, and the first failing invocation aborts the run.
package release

// Package model defines the domain types and value objects for the
// lighter CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (Light, Group, SceneRef, StateUpdate, etc.) are transient
// representations of gateway resources, decoded from deCONZ REST API
// responses at runtime — there are no persistent state files.
//
// The package also defines exit codes (ExitCode), a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// and the Selector type used across the CLI to address lights, groups
// and scenes by id, name or regular expression.
package model

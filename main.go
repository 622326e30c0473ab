// Package main is the entry point for the aurup CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The aurup tool reviews pending package
// upgrades from the configured repositories, the AUR, and VCS-tracked
// packages, and lets the operator exclude entries before an upgrade.
package main

import "github.com/ajxudir/aurup/cmd"

// main initializes and runs the aurup CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles subcommands like check and version.
func main() {
	cmd.Execute()
}

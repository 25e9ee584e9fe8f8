// Package cmd implements the command-line interface for eventkit.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide event-planning tools for AI assistants
//   - initdb: Initialize the SQLite participant database
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd

// Package utils provides shared helpers for the closet commands.
//
// Functions are organized into logical groups:
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: replaces a file through a synced temp file and rename
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//
// # I/O Utilities
//
//   - ReadPasswordLine: reads a password from the first line of a reader
//
// # String Utilities
//
//   - Plural: "1 item", "3 matches"
//   - SplitWords: splits a shell line into words, honouring quotes
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - IsTerminal: checks if stdin is a terminal
//   - ReadPassphrase: prompts without echoing input
//   - ReadNewPassphrase: prompts twice and checks both entries match
package utils

// Package logger provides leveled console logging for closet commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Messages carry coloured prefixes from fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows all messages including debug details
//
// Warnings and errors are always written to the error stream.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d drawers", count)
//
// Never pass passwords, key material, drawer names or item names to the
// logger. The inventory is confidential and logs are not encrypted.
package logger

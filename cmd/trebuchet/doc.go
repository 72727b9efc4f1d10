// Package trebuchet provides the command-line interface for the trebuchet tool.
// It configures subcommands (scan, sum, words, baseline, history, view, etc.),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/trebuchet/trebuchet/cmd/trebuchet"
//	func main() { trebuchet.Execute() }
package trebuchet

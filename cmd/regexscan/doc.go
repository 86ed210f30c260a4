// Package regexscan provides the command-line interface for the regexscan
// tool. It wires flags and config files into the rule loader and match
// engine, selects a report format, and maps failures to exit codes.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/regexscan/regexscan/cmd/regexscan"
//	func main() { os.Exit(regexscan.Execute()) }
package regexscan

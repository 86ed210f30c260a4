// Package engine matches tokens against a loaded rule set. Match evaluates a
// single token; ScanTokens reads a line-oriented stream, matches tokens in
// parallel and hands results back in input order. This package is internal;
// external consumers should use the facade in pkg/core.
package engine

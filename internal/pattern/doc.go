// Package pattern compiles rule expressions into matchers. Three syntaxes are
// supported: POSIX extended (the default), Go RE2, and a backtracking
// Perl-style dialect. Compilation failures are returned as errors and never
// panic; callers decide whether a bad expression matters.
package pattern

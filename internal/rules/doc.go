// Package rules loads named regex rules from YAML rule files. A rule
// directory is scanned (non-recursively) for *.yml and *.yaml files; each file
// contributes a RuleFile when at least one of its patterns compiles. Bad
// patterns and unreadable files are skipped so that one broken entry never
// blocks the rest of the corpus.
package rules

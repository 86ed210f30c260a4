package types

import "time"

// MatchGroup lists the rule names from one rule file that matched a token,
// in rule order. Groups are only produced when Names is non-empty.
type MatchGroup struct {
	Path  string   `json:"path"`
	Names []string `json:"names"`
}

// ScanResult is the outcome of matching a single token against a rule set.
type ScanResult struct {
	Token        string       `json:"token"`
	Groups       []MatchGroup `json:"groups"`
	TotalMatches int          `json:"total_matches"`
}

// Matched reports whether any rule matched the token.
func (r ScanResult) Matched() bool { return len(r.Groups) > 0 }

// TokenResult is a ScanResult produced in batch mode. Line is the 1-based
// line of the token in its input; Index is the 1-based token ordinal
// (blank lines are not counted).
type TokenResult struct {
	Line  int `json:"line,omitempty"`
	Index int `json:"index"`
	ScanResult
}

// Summary aggregates counters for a whole run.
type Summary struct {
	RuleFiles     int           `json:"rule_files"`
	TotalRules    int           `json:"total_rules"`
	TokensScanned int           `json:"tokens_scanned"`
	TotalMatches  int           `json:"total_matches"`
	Duration      time.Duration `json:"-"`
}

// MatchRate returns totalMatches/tokensScanned as a percentage. The second
// return value is false when no tokens were scanned.
func (s Summary) MatchRate() (float64, bool) {
	if s.TokensScanned == 0 {
		return 0, false
	}
	return float64(s.TotalMatches) / float64(s.TokensScanned) * 100, true
}

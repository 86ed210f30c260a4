package core

import (
	"context"
	"io"

	"github.com/regexscan/regexscan/internal/engine"
	"github.com/regexscan/regexscan/internal/pattern"
	"github.com/regexscan/regexscan/internal/rules"
	"github.com/regexscan/regexscan/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Options     = rules.Options
	RuleSet     = rules.RuleSet
	RuleFile    = rules.RuleFile
	Rule        = rules.Rule
	Syntax      = pattern.Syntax
	Config      = engine.Config
	MatchGroup  = types.MatchGroup
	ScanResult  = types.ScanResult
	TokenResult = types.TokenResult
	Summary     = types.Summary
)

const (
	SyntaxPOSIX = pattern.SyntaxPOSIX
	SyntaxRE2   = pattern.SyntaxRE2
	SyntaxPCRE  = pattern.SyntaxPCRE
)

var (
	ErrRulesDirUnavailable = rules.ErrRulesDirUnavailable
	ErrNoRules             = rules.ErrNoRules
)

// LoadRules loads every rule file in dir. Unlike the internal loader it
// treats an empty result as an error (ErrNoRules).
func LoadRules(ctx context.Context, dir string, opts Options) (*RuleSet, error) {
	rs, err := rules.LoadDirectory(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, ErrNoRules
	}
	return rs, nil
}

// Match is the stable entrypoint for classifying one token.
func Match(rs *RuleSet, token string) ScanResult {
	return engine.Match(rs, token)
}

// ScanTokens classifies each non-blank line of r; see the engine package for
// ordering and cancellation guarantees.
func ScanTokens(ctx context.Context, rs *RuleSet, r io.Reader, cfg Config, emit func(TokenResult) error) (Summary, error) {
	return engine.ScanTokens(ctx, rs, r, cfg, emit)
}

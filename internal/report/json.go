package report

import (
	"encoding/json"
	"io"

	"github.com/regexscan/regexscan/internal/rules"
	"github.com/regexscan/regexscan/internal/types"
)

type jsonRuleFile struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Rules  int    `json:"rules"`
	Digest string `json:"digest"`
}

type jsonSummary struct {
	types.Summary
	MatchRate  *float64 `json:"match_rate,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

type jsonDoc struct {
	RulesDir    string              `json:"rules_dir"`
	Fingerprint string              `json:"fingerprint"`
	RuleFiles   []jsonRuleFile      `json:"rule_files"`
	Input       string              `json:"input,omitempty"`
	Results     []types.TokenResult `json:"results"`
	Summary     jsonSummary         `json:"summary"`
}

// Run groups what a finished scan hands to the buffered writers.
type Run struct {
	Rules   *rules.RuleSet
	Input   string
	Results []types.TokenResult
	Summary types.Summary
}

// WriteJSON writes the run as a single indented JSON document.
func WriteJSON(w io.Writer, run Run, opts PrintOptions) error {
	doc := jsonDoc{
		Input:     run.Input,
		Results:   redactResults(run.Results, opts.Redact),
		RuleFiles: []jsonRuleFile{},
		Summary: jsonSummary{
			Summary:    run.Summary,
			DurationMS: run.Summary.Duration.Milliseconds(),
		},
	}
	if doc.Results == nil {
		doc.Results = []types.TokenResult{}
	}
	if rate, ok := run.Summary.MatchRate(); ok {
		doc.Summary.MatchRate = &rate
	}
	if run.Rules != nil {
		doc.RulesDir = run.Rules.Dir
		doc.Fingerprint = run.Rules.Fingerprint()
		for _, f := range run.Rules.Files {
			doc.RuleFiles = append(doc.RuleFiles, jsonRuleFile{Path: f.Path, Name: f.Name(), Rules: len(f.Rules), Digest: f.Digest})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func redactResults(in []types.TokenResult, on bool) []types.TokenResult {
	if !on || len(in) == 0 {
		return in
	}
	out := make([]types.TokenResult, len(in))
	for i, tr := range in {
		tr.Token = maskValue(tr.Token)
		out[i] = tr
	}
	return out
}

// internal/report/sarif.go
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/regexscan/regexscan/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt     `json:"artifactLocation"`
	Region           *sarifRegion `json:"region,omitempty"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// RuleID names a rule by its file base name and rule name. Rule names are
// not unique across files, and may be empty. The extension stays in the ID
// so keys.yml and keys.yaml remain distinct rules.
func RuleID(path, name string) string {
	if name == "" {
		name = "unnamed"
	}
	return DisplayName(path) + "/" + name
}

// WriteSARIF writes one SARIF 2.1.0 result per matched rule name. Results
// carry the input file and line when the token came from a file.
func WriteSARIF(w io.Writer, run Run, version string, opts PrintOptions) error {
	out := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: "regexscan", Version: version, Rules: []sarifRule{}}},
		Results: []sarifResult{},
	}
	index := map[string]int{}
	for _, tr := range run.Results {
		tok := tr.Token
		if opts.Redact {
			tok = maskValue(tok)
		}
		for _, g := range tr.Groups {
			for _, name := range g.Names {
				id := RuleID(g.Path, name)
				idx, ok := index[id]
				if !ok {
					idx = len(out.Tool.Driver.Rules)
					index[id] = idx
					out.Tool.Driver.Rules = append(out.Tool.Driver.Rules, sarifRule{
						ID:               id,
						Name:             name,
						ShortDescription: sarifMessage{Text: fmt.Sprintf("%s pattern from %s", name, DisplayName(g.Path))},
					})
				}
				res := sarifResult{
					RuleID:    id,
					RuleIndex: idx,
					Level:     "warning",
					Message:   sarifMessage{Text: fmt.Sprintf("token %q matched %s", tok, id)},
				}
				if run.Input != "" {
					loc := sarifLoc{PhysicalLocation: sarifPhys{ArtifactLocation: sarifArt{URI: filepath.ToSlash(run.Input)}}}
					if tr.Line > 0 {
						loc.PhysicalLocation.Region = &sarifRegion{StartLine: tr.Line}
					}
					res.Locations = []sarifLoc{loc}
				}
				out.Results = append(out.Results, res)
			}
		}
	}
	if run.Rules != nil {
		out.Properties = map[string]any{
			"rulesFingerprint": run.Rules.Fingerprint(),
			"ruleFiles":        len(run.Rules.Files),
			"patterns":         run.Rules.TotalRules,
			"tokensScanned":    run.Summary.TokensScanned,
		}
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{out},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Results flattens a single-token scan into the slice form the buffered
// writers take.
func Results(res types.ScanResult) []types.TokenResult {
	return []types.TokenResult{{Index: 1, ScanResult: res}}
}

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/regexscan/regexscan/internal/rules"
	"github.com/regexscan/regexscan/internal/types"
)

// PrintTable renders results as a bordered table with one row per match
// group, followed by the summary footer.
func PrintTable(w io.Writer, results []types.TokenResult, sum types.Summary, opts PrintOptions) error {
	if len(results) == 0 || sum.TotalMatches == 0 {
		fmt.Fprintln(w, "No matches found")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("#", "LINE", "TOKEN", "RULE FILE", "RULES")
		for _, tr := range results {
			tok := tr.Token
			if opts.Redact {
				tok = maskValue(tok)
			}
			for _, g := range tr.Groups {
				line := ""
				if tr.Line > 0 {
					line = strconv.Itoa(tr.Line)
				}
				if err := table.Append([]string{
					strconv.Itoa(tr.Index),
					line,
					tok,
					DisplayName(g.Path),
					strings.Join(g.Names, ", "),
				}); err != nil {
					return err
				}
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Matches: %d across %d tokens (%d rule files, %d patterns)\n",
		sum.TotalMatches, sum.TokensScanned, sum.RuleFiles, sum.TotalRules)
	if rate, ok := sum.MatchRate(); ok {
		fmt.Fprintf(w, "Match rate: %.1f%%\n", rate)
	}
	if sum.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", sum.Duration.Seconds())
	}
	return nil
}

// PrintRuleFiles lists the loaded rule files in load order.
func PrintRuleFiles(w io.Writer, rs *rules.RuleSet) error {
	table := tablewriter.NewWriter(w)
	table.Header("FILE", "RULES", "DIGEST")
	var files []*rules.RuleFile
	if rs != nil {
		files = rs.Files
	}
	for _, f := range files {
		if err := table.Append([]string{f.Name(), strconv.Itoa(len(f.Rules)), f.Digest}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	if rs == nil {
		return nil
	}
	fmt.Fprintf(w, "%d rule files, %d patterns from %s (fingerprint %s)\n", len(rs.Files), rs.TotalRules, rs.Dir, rs.Fingerprint())
	return nil
}

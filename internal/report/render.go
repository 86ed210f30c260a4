package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/regexscan/regexscan/internal/types"
)

const separatorWidth = 40

type PrintOptions struct {
	NoColor bool
	// Redact masks tokens in every rendered form.
	Redact bool
}

type palette struct {
	bold, green, red, yellow, cyan func(string) string
}

func newPalette(w io.Writer, noColor bool) palette {
	if noColor {
		plain := func(s string) string { return s }
		return palette{plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(w)
	render := func(st lipgloss.Style) func(string) string {
		return func(s string) string { return st.Render(s) }
	}
	return palette{
		bold:   render(r.NewStyle().Bold(true)),
		green:  render(r.NewStyle().Foreground(lipgloss.Color("10"))),
		red:    render(r.NewStyle().Foreground(lipgloss.Color("9"))),
		yellow: render(r.NewStyle().Foreground(lipgloss.Color("11"))),
		cyan:   render(r.NewStyle().Foreground(lipgloss.Color("6"))),
	}
}

// Printer renders human-readable scan output. Single-token and batch modes
// share the per-group layout.
type Printer struct {
	w    io.Writer
	opts PrintOptions
	c    palette
}

func NewPrinter(w io.Writer, opts PrintOptions) *Printer {
	return &Printer{w: w, opts: opts, c: newPalette(w, opts.NoColor)}
}

// Banner prints the title block shown before text output.
func (p *Printer) Banner() {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(p.w, p.c.cyan(line))
	fmt.Fprintln(p.w, p.c.bold("                  REGEX PATTERN SCANNER"))
	fmt.Fprintln(p.w, p.c.cyan(line))
	fmt.Fprintln(p.w)
}

// Loaded reports the size of the rule set once loading has finished.
func (p *Printer) Loaded(dir string, ruleFiles, totalRules int) {
	fmt.Fprintln(p.w, p.c.cyan("Loading rules from "+dir+"..."))
	fmt.Fprintln(p.w, p.c.green(fmt.Sprintf("✓ Loaded %d rule files with %d total patterns", ruleFiles, totalRules)))
}

// Token prints the result of single-token mode.
func (p *Printer) Token(res types.ScanResult) {
	fmt.Fprintf(p.w, "\n%s%s\n", p.c.bold("Scanning token: "), p.c.yellow(p.token(res.Token)))
	p.groups(res.Groups)
	if !res.Matched() {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, p.c.red("✗ No matches found"))
		return
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.c.green(fmt.Sprintf("✓ Found %d total matches", res.TotalMatches)))
}

// BatchHeader announces the input being scanned in batch mode.
func (p *Printer) BatchHeader(input string) {
	fmt.Fprintln(p.w, p.c.bold("Scanning file: "+input))
}

// BatchToken prints one batch-mode token with its groups.
func (p *Printer) BatchToken(tr types.TokenResult) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.c.bold(separator()))
	fmt.Fprintf(p.w, "%s%s\n", p.c.bold(fmt.Sprintf("Token %d: ", tr.Index)), p.c.yellow(p.token(tr.Token)))
	p.groups(tr.Groups)
	if !tr.Matched() {
		fmt.Fprintln(p.w, p.c.red("  ✗ No matches for this token"))
	}
}

// Summary prints the end-of-run statistics block. The match rate line is
// omitted when no tokens were scanned.
func (p *Printer) Summary(sum types.Summary) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.c.bold(separator()))
	fmt.Fprintln(p.w, p.c.bold("SCAN COMPLETE"))
	fmt.Fprintln(p.w, p.c.cyan(separator()))
	fmt.Fprintln(p.w, p.c.bold("Statistics:"))
	fmt.Fprintf(p.w, "  Rule files loaded:  %d\n", sum.RuleFiles)
	fmt.Fprintf(p.w, "  Patterns loaded:    %d\n", sum.TotalRules)
	fmt.Fprintf(p.w, "  Tokens scanned:     %d\n", sum.TokensScanned)
	fmt.Fprintf(p.w, "  Total matches:      %d\n", sum.TotalMatches)
	if rate, ok := sum.MatchRate(); ok {
		fmt.Fprintf(p.w, "  Match rate:         %.1f%%\n", rate)
	}
	if sum.Duration > 0 {
		fmt.Fprintf(p.w, "  Scan duration:      %.2fs\n", sum.Duration.Seconds())
	}
	fmt.Fprintln(p.w, p.c.cyan(separator()))
	fmt.Fprintln(p.w)
}

func (p *Printer) groups(groups []types.MatchGroup) {
	for _, g := range groups {
		fmt.Fprintf(p.w, "%s%s (%d matches):\n", p.c.green("  ✓ "), p.c.cyan(DisplayName(g.Path)), len(g.Names))
		for _, n := range g.Names {
			fmt.Fprintln(p.w, p.c.yellow("    • "+n))
		}
	}
}

func (p *Printer) token(tok string) string {
	if p.opts.Redact {
		return maskValue(tok)
	}
	return tok
}

// DisplayName is the final path segment of a rule file path.
func DisplayName(path string) string {
	return filepath.Base(path)
}

func separator() string { return strings.Repeat("=", separatorWidth) }

// maskValue keeps the first and last four runes of a value.
func maskValue(s string) string {
	r := []rune(s)
	if len(r) <= 8 {
		return "********"
	}
	return string(r[:4]) + "…" + string(r[len(r)-4:])
}

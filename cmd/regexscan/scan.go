package regexscan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/regexscan/regexscan/internal/engine"
	"github.com/regexscan/regexscan/internal/logging"
	"github.com/regexscan/regexscan/internal/pattern"
	"github.com/regexscan/regexscan/internal/report"
	"github.com/regexscan/regexscan/internal/rules"
	"github.com/regexscan/regexscan/internal/types"
	"github.com/spf13/cobra"
)

// Output formats accepted by the format config key.
const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
	formatSARIF = "sarif"
)

// settings is the resolved view of flags and config files.
type settings struct {
	rulesDir string
	threads  int
	syntax   pattern.Syntax
	exclude  []string
	noColor  bool
	redact   bool
	format   string
	log      *slog.Logger
}

func resolve(cmd *cobra.Command, opts *options) (settings, error) {
	log := logging.Init(opts.verbose)
	lcfg, gcfg, err := loadConfigs(opts.config)
	if err != nil {
		return settings{}, fail("read config %s: %v", opts.config, err)
	}

	s := settings{
		rulesDir: pickString(opts.directory, lcfg.RulesDir, gcfg.RulesDir),
		threads:  pickInt(opts.threads, lcfg.Threads, gcfg.Threads),
		exclude:  pickStrings(opts.excludeRules, lcfg.ExcludeRules, gcfg.ExcludeRules),
		noColor:  pickBool(opts.noColor, lcfg.NoColor, gcfg.NoColor),
		redact:   pickBool(opts.redact, lcfg.Redact, gcfg.Redact),
		log:      log,
	}
	if s.rulesDir == "" {
		s.rulesDir = DefaultRulesDir
	}
	if s.threads < 0 {
		return settings{}, fail("--threads must not be negative")
	}
	for _, g := range s.exclude {
		if !doublestar.ValidatePattern(g) {
			return settings{}, fail("invalid --exclude-rules glob %q", g)
		}
	}
	if !isTerminal(cmd.OutOrStdout()) {
		s.noColor = true
	}

	s.syntax, err = pattern.ParseSyntax(pickString(opts.syntax, lcfg.Syntax, gcfg.Syntax))
	if err != nil {
		return settings{}, fail("%v", err)
	}

	switch {
	case opts.json:
		s.format = formatJSON
	case opts.sarif:
		s.format = formatSARIF
	case opts.table:
		s.format = formatTable
	default:
		s.format = strings.ToLower(pickString("", lcfg.Format, gcfg.Format))
	}
	switch s.format {
	case "":
		s.format = formatText
	case formatText, formatTable, formatJSON, formatSARIF:
	default:
		return settings{}, fail("unknown output format %q (want text, table, json or sarif)", s.format)
	}
	log.Debug("settings resolved", "rules_dir", s.rulesDir, "threads", s.threads, "syntax", s.syntax, "format", s.format)
	return s, nil
}

// loadRules loads the rule set and fails when nothing usable was found.
func loadRules(ctx context.Context, s settings) (*rules.RuleSet, error) {
	rs, err := rules.LoadDirectory(ctx, s.rulesDir, rules.Options{
		Syntax:  s.syntax,
		Workers: s.threads,
		Exclude: s.exclude,
		Logger:  s.log,
	})
	switch {
	case errors.Is(err, rules.ErrRulesDirUnavailable):
		return nil, fail("%v", err)
	case err != nil:
		return nil, err
	case rs.Empty():
		return nil, fail("%v in %s", rules.ErrNoRules, s.rulesDir)
	}
	return rs, nil
}

func newScanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [token]",
		Short: "Scan a token or a file of tokens (same as the root command)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args)
		},
	}
}

func runScan(cmd *cobra.Command, opts *options, args []string) error {
	token := opts.token
	if token == "" && len(args) > 0 {
		token = args[0]
	}
	if opts.file == "" && token == "" {
		_ = cmd.Help()
		return &ExitError{Code: ExitFailure}
	}

	s, err := resolve(cmd, opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rs, err := loadRules(ctx, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.file != "" {
		return scanFile(ctx, cmd, s, rs, opts.file, out)
	}
	return scanSingle(s, rs, token, out)
}

func scanSingle(s settings, rs *rules.RuleSet, token string, out io.Writer) error {
	res, sum := engine.ScanToken(rs, token)
	s.log.Debug("token scanned", "matches", res.TotalMatches)
	popts := report.PrintOptions{NoColor: s.noColor, Redact: s.redact}
	run := report.Run{Rules: rs, Results: report.Results(res), Summary: sum}

	switch s.format {
	case formatJSON:
		return report.WriteJSON(out, run, popts)
	case formatSARIF:
		return report.WriteSARIF(out, run, Version, popts)
	case formatTable:
		return report.PrintTable(out, run.Results, sum, popts)
	}
	p := report.NewPrinter(out, popts)
	p.Banner()
	p.Loaded(rs.Dir, len(rs.Files), rs.TotalRules)
	p.Token(res)
	return nil
}

func scanFile(ctx context.Context, cmd *cobra.Command, s settings, rs *rules.RuleSet, path string, out io.Writer) error {
	var in io.Reader
	name := path
	if path == "-" {
		in = cmd.InOrStdin()
		name = "<stdin>"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fail("could not open input file: %v", err)
		}
		defer f.Close()
		in = f
	}

	popts := report.PrintOptions{NoColor: s.noColor, Redact: s.redact}
	cfg := engine.Config{Threads: s.threads}

	if s.format == formatText {
		p := report.NewPrinter(out, popts)
		p.Banner()
		p.Loaded(rs.Dir, len(rs.Files), rs.TotalRules)
		p.BatchHeader(name)
		sum, err := engine.ScanTokens(ctx, rs, in, cfg, func(tr types.TokenResult) error {
			p.BatchToken(tr)
			return nil
		})
		if err != nil {
			return scanError(err)
		}
		p.Summary(sum)
		return nil
	}

	var results []types.TokenResult
	sum, err := engine.ScanTokens(ctx, rs, in, cfg, func(tr types.TokenResult) error {
		results = append(results, tr)
		return nil
	})
	if err != nil {
		return scanError(err)
	}
	s.log.Debug("batch scanned", "tokens", sum.TokensScanned, "matches", sum.TotalMatches, "duration", sum.Duration)

	run := report.Run{Rules: rs, Input: path, Results: results, Summary: sum}
	if path == "-" {
		run.Input = ""
	}
	switch s.format {
	case formatJSON:
		return report.WriteJSON(out, run, popts)
	case formatSARIF:
		return report.WriteSARIF(out, run, Version, popts)
	default:
		return report.PrintTable(out, results, sum, popts)
	}
}

func scanError(err error) error {
	if errors.Is(err, context.Canceled) {
		return fail("scan interrupted")
	}
	return fail("%v", err)
}

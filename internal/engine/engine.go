package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/regexscan/regexscan/internal/rules"
	"github.com/regexscan/regexscan/internal/types"
	"golang.org/x/sync/errgroup"
)

// MaxTokenBytes is the longest input line ScanTokens accepts.
const MaxTokenBytes = 1 << 20

// Config controls batch scanning.
type Config struct {
	// Threads bounds concurrent matching (0 = GOMAXPROCS).
	Threads int
}

func (c Config) threads() int {
	if c.Threads > 0 {
		return c.Threads
	}
	return runtime.GOMAXPROCS(0)
}

// BatchSize returns how many tokens are buffered before a chunk is matched
// and reported.
func BatchSize(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads < 2 {
		threads = 2
	}
	if threads > 32 {
		threads = 32
	}
	return threads * 4
}

// Match tests token against every rule in rs. Rule files are visited in
// load order and rules in file order; files with no matching rule produce
// no group. Match does not modify rs and may be called concurrently.
func Match(rs *rules.RuleSet, token string) types.ScanResult {
	res := types.ScanResult{Token: token}
	if rs == nil {
		return res
	}
	for _, f := range rs.Files {
		var names []string
		for _, r := range f.Rules {
			if r.Pattern == nil {
				continue
			}
			if r.Pattern.Match(token) {
				names = append(names, r.Name)
			}
		}
		if len(names) > 0 {
			res.Groups = append(res.Groups, types.MatchGroup{Path: f.Path, Names: names})
			res.TotalMatches += len(names)
		}
	}
	return res
}

// ScanToken matches a single token and returns the result with a summary
// counting it as one scanned token.
func ScanToken(rs *rules.RuleSet, token string) (types.ScanResult, types.Summary) {
	started := time.Now()
	res := Match(rs, token)
	sum := summaryFor(rs)
	sum.TokensScanned = 1
	sum.TotalMatches = res.TotalMatches
	sum.Duration = time.Since(started)
	return res, sum
}

// ScanTokens treats every non-blank line of r as a token (see NormalizeToken)
// and matches it against rs. Tokens are matched in parallel chunks; emit is
// called once per token, in input order, from the calling goroutine. A
// non-nil error from emit stops the scan. ctx is checked between chunks.
func ScanTokens(ctx context.Context, rs *rules.RuleSet, r io.Reader, cfg Config, emit func(types.TokenResult) error) (types.Summary, error) {
	started := time.Now()
	sum := summaryFor(rs)
	threads := cfg.threads()
	batch := BatchSize(cfg.Threads)
	chunk := make([]types.TokenResult, 0, batch)

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		defer func() { chunk = chunk[:0] }()
		if err := ctx.Err(); err != nil {
			return err
		}
		matchChunk(rs, chunk, threads)
		for _, tr := range chunk {
			sum.TokensScanned++
			sum.TotalMatches += tr.TotalMatches
			if emit != nil {
				if err := emit(tr); err != nil {
					return err
				}
			}
		}
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxTokenBytes)
	line := 0
	for sc.Scan() {
		line++
		tok := NormalizeToken(sc.Text())
		if tok == "" {
			continue
		}
		chunk = append(chunk, types.TokenResult{
			Line:       line,
			Index:      sum.TokensScanned + len(chunk) + 1,
			ScanResult: types.ScanResult{Token: tok},
		})
		if len(chunk) >= batch {
			if err := flush(); err != nil {
				sum.Duration = time.Since(started)
				return sum, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		sum.Duration = time.Since(started)
		return sum, fmt.Errorf("read tokens: %w", err)
	}
	err := flush()
	sum.Duration = time.Since(started)
	return sum, err
}

func matchChunk(rs *rules.RuleSet, chunk []types.TokenResult, threads int) {
	if threads <= 1 || len(chunk) == 1 {
		for i := range chunk {
			chunk[i].ScanResult = Match(rs, chunk[i].Token)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(threads)
	for i := range chunk {
		i := i
		g.Go(func() error {
			chunk[i].ScanResult = Match(rs, chunk[i].Token)
			return nil
		})
	}
	_ = g.Wait()
}

func summaryFor(rs *rules.RuleSet) types.Summary {
	if rs == nil {
		return types.Summary{}
	}
	return types.Summary{RuleFiles: len(rs.Files), TotalRules: rs.TotalRules}
}

package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// IsRuleFileName reports whether name carries a rule file suffix. The match
// is case-sensitive.
func IsRuleFileName(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

// Candidates lists rule files directly under dir (no recursion). Entries are
// kept when their name has a rule file suffix, is not excluded, and resolves
// (following symlinks) to a regular file. Names are returned in lexical
// order; os.ReadDir sorts, so the result does not depend on the filesystem's
// own enumeration order.
func Candidates(dir string, exclude []string) ([]string, error) {
	for _, g := range exclude {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("%w: %q", ErrBadExclude, g)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRulesDirUnavailable, err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !IsRuleFileName(name) || excluded(name, exclude) {
			continue
		}
		full := filepath.Join(dir, name)
		st, err := os.Stat(full)
		if err != nil || !st.Mode().IsRegular() {
			continue
		}
		out = append(out, full)
	}
	return out, nil
}

// excluded expects globs already checked by Candidates.
func excluded(name string, globs []string) bool {
	for _, g := range globs {
		if doublestar.MatchUnvalidated(g, name) {
			return true
		}
	}
	return false
}

// LoadDirectory loads every rule file under dir into a RuleSet. Files are
// parsed concurrently but stored in Candidates order. Files that fail to load
// are skipped. An unreadable directory (ErrRulesDirUnavailable), a malformed
// exclude glob (ErrBadExclude) and a cancelled ctx are errors. An empty result is not an error here; callers
// decide whether an empty RuleSet is fatal.
func LoadDirectory(ctx context.Context, dir string, opts Options) (*RuleSet, error) {
	paths, err := Candidates(dir, opts.Exclude)
	if err != nil {
		return nil, err
	}
	log := opts.logger()
	loaded := make([]*RuleFile, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rf, err := LoadFile(p, opts)
			if err != nil {
				log.Debug("rule file skipped", "path", p, "err", err)
				return nil
			}
			loaded[i] = rf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rs := New(dir, loaded...)
	log.Debug("rules loaded", "dir", dir, "candidates", len(paths), "files", len(rs.Files), "rules", rs.TotalRules)
	return rs, nil
}

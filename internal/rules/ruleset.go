package rules

import (
	"errors"
	"log/slog"
	"path/filepath"
	"runtime"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/regexscan/regexscan/internal/pattern"
)

var (
	// ErrRulesDirUnavailable indicates the rules directory could not be opened.
	ErrRulesDirUnavailable = errors.New("rules directory unavailable")
	// ErrNoRules indicates a directory produced no usable rule files.
	ErrNoRules = errors.New("no valid rule files loaded")
	// ErrNoValidRules indicates a rule file parsed but contained no rule with
	// a compilable regex.
	ErrNoValidRules = errors.New("rule file has no valid rules")
	// ErrBadExclude indicates a malformed exclude glob.
	ErrBadExclude = errors.New("invalid exclude glob")
)

// Options controls how rule files are loaded.
type Options struct {
	// Syntax is the regex dialect rules are compiled with (default POSIX).
	Syntax pattern.Syntax
	// Workers bounds concurrent rule file loads (0 = GOMAXPROCS).
	Workers int
	// Exclude holds doublestar globs matched against rule file names.
	Exclude []string
	// Logger receives debug records about skipped files. Nil uses slog.Default.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Rule is a named compiled pattern. Names are not unique and may be empty.
type Rule struct {
	Name    string
	Pattern pattern.Pattern
}

// RuleFile holds the rules compiled from one rule document, in document
// order. A stored RuleFile always has at least one rule.
type RuleFile struct {
	Path   string
	Digest string
	Rules  []Rule
}

// Name returns the final path element of the rule file.
func (f *RuleFile) Name() string { return filepath.Base(f.Path) }

// RuleSet is the collection of rule files loaded from a directory. It is
// read-only once LoadDirectory returns and safe to share between goroutines.
type RuleSet struct {
	Dir        string
	Files      []*RuleFile
	TotalRules int
}

// New builds a RuleSet from already-compiled files. Files without rules are
// dropped.
func New(dir string, files ...*RuleFile) *RuleSet {
	rs := &RuleSet{Dir: dir}
	for _, f := range files {
		rs.add(f)
	}
	return rs
}

// add is the only way files enter a RuleSet; it keeps TotalRules in step.
func (rs *RuleSet) add(f *RuleFile) {
	if f == nil || len(f.Rules) == 0 {
		return
	}
	rs.Files = append(rs.Files, f)
	rs.TotalRules += len(f.Rules)
}

// Empty reports whether the set holds no rule files.
func (rs *RuleSet) Empty() bool { return rs == nil || len(rs.Files) == 0 }

// Fingerprint identifies the loaded rule corpus by combining the digests of
// its files in load order.
func (rs *RuleSet) Fingerprint() string {
	if rs.Empty() {
		return fastHash(nil)
	}
	h := xxhash.New()
	for _, f := range rs.Files {
		_, _ = h.WriteString(f.Name())
		_, _ = h.WriteString(":")
		_, _ = h.WriteString(f.Digest)
		_, _ = h.WriteString("\n")
	}
	return hex16(h.Sum64())
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	return hex16(xxhash.Sum64(b))
}

func hex16(sum uint64) string {
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

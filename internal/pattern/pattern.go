package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Syntax selects the regular expression dialect used by Compile.
type Syntax string

const (
	// SyntaxPOSIX is POSIX extended regular expression syntax with
	// leftmost-longest semantics, plus the GNU escapes \s \S \w \W \b \B.
	SyntaxPOSIX Syntax = "posix"
	// SyntaxRE2 is Go's RE2 syntax, including Perl character classes.
	SyntaxRE2 Syntax = "re2"
	// SyntaxPCRE is a backtracking dialect supporting lookaround and
	// backreferences. Matches are bounded by MatchTimeout.
	SyntaxPCRE Syntax = "pcre"
)

// MatchTimeout bounds a single SyntaxPCRE match attempt.
var MatchTimeout = 250 * time.Millisecond

// ErrUnknownSyntax is returned by ParseSyntax for unsupported dialect names.
var ErrUnknownSyntax = errors.New("unknown pattern syntax")

// Pattern is a compiled expression. Match reports whether the expression
// occurs anywhere in text. Implementations are safe for concurrent use.
type Pattern interface {
	Match(text string) bool
	String() string
}

// Syntaxes returns the supported dialect names.
func Syntaxes() []string {
	return []string{string(SyntaxPOSIX), string(SyntaxRE2), string(SyntaxPCRE)}
}

// ParseSyntax validates a dialect name. An empty string selects SyntaxPOSIX.
func ParseSyntax(s string) (Syntax, error) {
	switch Syntax(strings.ToLower(strings.TrimSpace(s))) {
	case "", SyntaxPOSIX:
		return SyntaxPOSIX, nil
	case SyntaxRE2:
		return SyntaxRE2, nil
	case SyntaxPCRE:
		return SyntaxPCRE, nil
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSyntax, s, strings.Join(Syntaxes(), ", "))
}

// Compile compiles expr using the given syntax.
func Compile(syntax Syntax, expr string) (Pattern, error) {
	switch syntax {
	case "", SyntaxPOSIX:
		re, err := compilePOSIX(expr)
		if err != nil {
			return nil, err
		}
		return stdPattern{re}, nil
	case SyntaxRE2:
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		return stdPattern{re}, nil
	case SyntaxPCRE:
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return nil, err
		}
		re.MatchTimeout = MatchTimeout
		return backtrackPattern{re}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSyntax, string(syntax))
}

// compilePOSIX compiles extended syntax with leftmost-longest semantics.
// The GNU escapes \s \S \w \W \b \B are accepted on top of plain ERE;
// any other backslash class such as \d is still rejected.
func compilePOSIX(expr string) (*regexp.Regexp, error) {
	re, err := regexp.CompilePOSIX(expr)
	if err == nil {
		return re, nil
	}
	plain, ok := stripGNUEscapes(expr)
	if !ok {
		return nil, err
	}
	if _, perr := regexp.CompilePOSIX(plain); perr != nil {
		return nil, err
	}
	re, gerr := regexp.Compile(expr)
	if gerr != nil {
		return nil, err
	}
	re.Longest()
	return re, nil
}

// stripGNUEscapes replaces each GNU escape with a literal so the remainder
// can be checked as plain ERE. It reports whether any escape was replaced.
func stripGNUEscapes(expr string) (string, bool) {
	var b strings.Builder
	b.Grow(len(expr))
	found := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c != '\\' || i+1 == len(expr) {
			b.WriteByte(c)
			continue
		}
		i++
		switch expr[i] {
		case 's', 'S', 'w', 'W', 'b', 'B':
			b.WriteByte('x')
			found = true
		default:
			b.WriteByte('\\')
			b.WriteByte(expr[i])
		}
	}
	return b.String(), found
}

type stdPattern struct {
	re *regexp.Regexp
}

func (p stdPattern) Match(text string) bool { return p.re.MatchString(text) }

func (p stdPattern) String() string { return p.re.String() }

type backtrackPattern struct {
	re *regexp2.Regexp
}

// Match treats a match error (timeout) as no match.
func (p backtrackPattern) Match(text string) bool {
	ok, err := p.re.MatchString(text)
	return err == nil && ok
}

func (p backtrackPattern) String() string { return p.re.String() }

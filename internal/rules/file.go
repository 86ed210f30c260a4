package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/regexscan/regexscan/internal/pattern"
	yaml "gopkg.in/yaml.v3"
)

// Keys recognized in a rule document. Everything else is ignored.
const (
	keyPatterns = "patterns"
	keyPattern  = "pattern"
	keyName     = "name"
	keyRegex    = "regex"
)

type parseState int

const (
	stateIdle parseState = iota
	stateInPatterns
	stateInPattern
	stateAwaitingName
	stateAwaitingRegex
)

// ruleParser consumes the scalars of a rule document in document order.
type ruleParser struct {
	syntax  pattern.Syntax
	state   parseState
	pending string
	rules   []Rule
}

func (p *ruleParser) scalar(v string) {
	switch p.state {
	case stateAwaitingName:
		p.pending = v
		p.state = stateInPattern
		return
	case stateAwaitingRegex:
		p.consume(v)
		return
	}
	switch {
	case v == keyPatterns:
		if p.state == stateIdle {
			p.state = stateInPatterns
		}
	case v == keyPattern && (p.state == stateInPatterns || p.state == stateInPattern):
		p.pending = ""
		p.state = stateInPattern
	case v == keyName && p.state == stateInPattern:
		p.state = stateAwaitingName
	case v == keyRegex && p.state == stateInPattern:
		p.state = stateAwaitingRegex
	}
}

// consume finishes the current pattern record. The record is used up whether
// or not its regex compiles.
func (p *ruleParser) consume(expr string) {
	if expr != "" {
		if re, err := pattern.Compile(p.syntax, expr); err == nil {
			p.rules = append(p.rules, Rule{Name: p.pending, Pattern: re})
		}
	}
	p.pending = ""
	p.state = stateInPatterns
}

// walk feeds every scalar under n to the parser. Aliases are not followed.
func (p *ruleParser) walk(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode, yaml.SequenceNode:
		for _, c := range n.Content {
			p.walk(c)
		}
	case yaml.ScalarNode:
		p.scalar(n.Value)
	}
}

// LoadFile parses one YAML rule document. Rules whose regex is missing,
// empty or fails to compile are dropped without error. A file that cannot be
// read or parsed, or that yields no rules, returns an error; directory
// loading treats any such error as the file contributing nothing.
func LoadFile(path string, opts Options) (*RuleFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	rules, err := parseRules(bytes.NewReader(b), opts.Syntax)
	if err != nil {
		return nil, fmt.Errorf("parse rule file %s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoValidRules)
	}
	return &RuleFile{Path: path, Digest: fastHash(b), Rules: rules}, nil
}

// parseRules runs the rule parser over every document in the stream. Parser
// state carries across document boundaries.
func parseRules(r io.Reader, syntax pattern.Syntax) ([]Rule, error) {
	p := &ruleParser{syntax: syntax}
	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		p.walk(&doc)
	}
	return p.rules, nil
}

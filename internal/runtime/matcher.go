// runtime/matcher.go

package runtime

import (
	"strings"

	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/preprocessor/pattern"
	"rgehrsitz/botmaster/internal/template"
)

// Captures is what a successful match bound.
type Captures = template.Captures

// Match tiers, best first.
const (
	TierExact = iota
	TierVariable
	TierWildcard
)

// Specificity ranks a match. Lower values are more specific and fields are
// compared in declaration order.
type Specificity struct {
	Tier      int // TierExact, TierVariable or TierWildcard
	Priority  int // 0 if the pattern uses the high priority wildcard or none at all
	Wildcards int // wildcard spans in the pattern
	Absorbed  int // input tokens taken by wildcards
	Variables int // variable captures
}

// Less reports whether s is strictly more specific than o.
func (s Specificity) Less(o Specificity) bool {
	switch {
	case s.Tier != o.Tier:
		return s.Tier < o.Tier
	case s.Priority != o.Priority:
		return s.Priority < o.Priority
	case s.Wildcards != o.Wildcards:
		return s.Wildcards < o.Wildcards
	case s.Absorbed != o.Absorbed:
		return s.Absorbed < o.Absorbed
	default:
		return s.Variables < o.Variables
	}
}

// Match runs pattern p against input. Trailing symbols of the input are
// ignored, the same way they were dropped from p at compile time.
func Match(input nlp.WordList, p pattern.Pattern) (Specificity, Captures, bool) {
	input = input.TrimTrailingSymbols()
	if len(p.Tokens) == 0 || len(input) < len(p.Tokens) {
		return Specificity{}, Captures{}, false
	}

	m := newMachine(p.Tokens, input)
	if !m.run(0, 0) {
		return Specificity{}, Captures{}, false
	}

	wildcards, variables := p.Wildcards(), p.Variables()
	spec := Specificity{
		Wildcards: wildcards,
		Absorbed:  len(input) - (len(p.Tokens) - wildcards),
		Variables: variables,
	}
	switch {
	case wildcards > 0:
		spec.Tier = TierWildcard
		if !p.HasPriorityWildcard() {
			spec.Priority = 1
		}
	case variables > 0:
		spec.Tier = TierVariable
	}
	return spec, Captures{Stars: m.stars, Vars: m.vars}, true
}

// machine executes pattern instructions over the input with backtracking on
// wildcard spans. Failed (ip, pos) states are remembered so that patterns
// with several wildcards stay polynomial.
type machine struct {
	tokens []pattern.Token
	input  nlp.WordList
	failed []bool
	stars  []string
	vars   map[string]string
}

func newMachine(tokens []pattern.Token, input nlp.WordList) *machine {
	return &machine{
		tokens: tokens,
		input:  input,
		failed: make([]bool, (len(tokens)+1)*(len(input)+1)),
		vars:   make(map[string]string),
	}
}

func (m *machine) run(ip, pos int) bool {
	state := ip*(len(m.input)+1) + pos
	if m.failed[state] {
		return false
	}
	if m.step(ip, pos) {
		return true
	}
	m.failed[state] = true
	return false
}

func (m *machine) step(ip, pos int) bool {
	if ip == len(m.tokens) {
		return pos == len(m.input)
	}
	// every remaining instruction takes at least one token
	if len(m.input)-pos < len(m.tokens)-ip {
		return false
	}

	tok := m.tokens[ip]
	w := m.input[pos]
	switch tok.Op {
	case pattern.OpWord:
		if w.IsSymbol() || !strings.EqualFold(tok.Text, w.Key()) {
			return false
		}
		return m.run(ip+1, pos+1)

	case pattern.OpSymbol:
		if w.Original != tok.Text {
			return false
		}
		return m.run(ip+1, pos+1)

	case pattern.OpVariable:
		if w.IsSymbol() {
			return false
		}
		prev, bound := m.vars[tok.Name]
		m.vars[tok.Name] = w.Original
		if m.run(ip+1, pos+1) {
			return true
		}
		if bound {
			m.vars[tok.Name] = prev
		} else {
			delete(m.vars, tok.Name)
		}
		return false

	case pattern.OpStar, pattern.OpUnderscore:
		rest := len(m.tokens) - ip - 1
		for end := len(m.input) - rest; end > pos; end-- {
			m.stars = append(m.stars, m.input[pos:end].Join())
			if m.run(ip+1, end) {
				return true
			}
			m.stars = m.stars[:len(m.stars)-1]
		}
		return false

	default:
		return false
	}
}

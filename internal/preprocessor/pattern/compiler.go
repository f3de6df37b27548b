// File: compiler.go

package pattern

import (
	"strings"

	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/rules"
)

// Pattern is one compiled alternative of a rule input.
type Pattern struct {
	InputIdx int     // index of the authored input this was compiled from
	Source   string  // the text that was compiled, after keyword expansion
	Tokens   []Token // the instructions, trailing symbols removed
}

// CompiledRule is a matchable rule ready for the runtime.
type CompiledRule struct {
	Order    int // position in tree traversal, used for tie-breaks
	ID       rules.RuleID
	Targets  []string
	Outputs  []string
	Patterns []Pattern
}

// HasTarget mirrors rules.Rule.HasTarget.
func (r *CompiledRule) HasTarget(user string) bool {
	rule := rules.Rule{Targets: r.Targets}
	return rule.HasTarget(user)
}

// Compile turns sanitized words into pattern instructions. Trailing symbols
// are dropped so that "What is your name?" and "What is your name" compile
// the same way; the runtime trims input the same way.
func Compile(inputIdx int, source string, words nlp.WordList) Pattern {
	words = words.TrimTrailingSymbols()
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, compileWord(w))
	}
	return Pattern{InputIdx: inputIdx, Source: source, Tokens: tokens}
}

func compileWord(w nlp.Word) Token {
	switch {
	case w.IsUnderscore():
		return Token{Op: OpUnderscore}
	case w.IsStar():
		return Token{Op: OpStar}
	case w.IsVariable():
		return Token{Op: OpVariable, Name: w.VariableName()}
	case w.IsSymbol():
		return Token{Op: OpSymbol, Text: w.Original}
	default:
		return Token{Op: OpWord, Text: w.Key()}
	}
}

// Wildcards returns the number of wildcard tokens.
func (p Pattern) Wildcards() int {
	return p.count(Op.IsWildcard)
}

// Variables returns the number of variable tokens.
func (p Pattern) Variables() int {
	return p.count(func(op Op) bool { return op == OpVariable })
}

// HasPriorityWildcard reports whether the pattern uses the high priority
// wildcard.
func (p Pattern) HasPriorityWildcard() bool {
	return p.count(func(op Op) bool { return op == OpUnderscore }) > 0
}

func (p Pattern) count(pred func(Op) bool) int {
	n := 0
	for _, t := range p.Tokens {
		if pred(t.Op) {
			n++
		}
	}
	return n
}

// Key identifies patterns that match exactly the same inputs.
func (p Pattern) Key() string {
	parts := make([]string, len(p.Tokens))
	for i, t := range p.Tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func (p Pattern) String() string {
	return p.Key()
}

// runtime/engine.go

package runtime

import (
	"sync/atomic"

	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/preprocessor"
	"rgehrsitz/botmaster/internal/preprocessor/pattern"
	"rgehrsitz/botmaster/internal/random"
	"rgehrsitz/botmaster/internal/rules"
	"rgehrsitz/botmaster/internal/template"

	"github.com/rs/zerolog/log"
)

// DefaultMaxRedirects bounds <srai> chains so that rules redirecting to each
// other cannot loop forever.
const DefaultMaxRedirects = 8

// MatchResult identifies the rule and authored input that produced an answer.
type MatchResult struct {
	RuleID   rules.RuleID `json:"ruleId"`
	InputIdx int          `json:"inputIdx"`
}

// Response is the full outcome of one lookup.
type Response struct {
	Text      string
	Matches   []MatchResult // empty when nothing answered
	OutputIdx int           // output chosen by the answering rule, -1 when nothing answered
}

// ruleSet is an immutable compiled snapshot of a rule tree.
type ruleSet struct {
	rules    []pattern.CompiledRule
	evasives []string
}

// Engine answers user input with the best matching rule.
type Engine struct {
	sanitizer    nlp.Sanitizer
	rng          random.Source
	maxRedirects int
	active       atomic.Pointer[ruleSet]
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom sets the source used to pick among several outputs.
func WithRandom(src random.Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithMaxRedirects sets how many nested redirects a single answer may follow.
func WithMaxRedirects(n int) Option {
	return func(e *Engine) { e.maxRedirects = n }
}

// NewEngine creates an engine with no rules. A nil sanitizer means
// nlp.DefaultSanitizer.
func NewEngine(s nlp.Sanitizer, opts ...Option) *Engine {
	if s == nil {
		s = nlp.DefaultSanitizer{}
	}
	e := &Engine{
		sanitizer:    s,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = random.NewTimeSeeded()
	}
	e.active.Store(&ruleSet{})
	return e
}

// SetRules compiles tree and replaces the active rule set in one step.
// Lookups already running finish against the previous set.
func (e *Engine) SetRules(tree *rules.Tree) {
	rs := &ruleSet{
		rules:    preprocessor.CompileRules(tree, e.sanitizer),
		evasives: tree.Evasives(),
	}
	e.active.Store(rs)
	log.Debug().Int("rules", len(rs.rules)).Int("evasives", len(rs.evasives)).Msg("Installed rule set")
}

// Sanitizer returns the sanitizer used for rules and input.
func (e *Engine) Sanitizer() nlp.Sanitizer {
	return e.sanitizer
}

// Evasives returns the outputs of the evasive rules of the active set.
func (e *Engine) Evasives() []string {
	return e.active.Load().evasives
}

// GetResponse answers input using only rules open to every user.
func (e *Engine) GetResponse(input string) (string, []MatchResult) {
	return e.GetResponseFor(input, "")
}

// GetResponseFor answers input on behalf of target.
func (e *Engine) GetResponseFor(input, target string) (string, []MatchResult) {
	r := e.Respond(input, target)
	return r.Text, r.Matches
}

// MatchList returns only the provenance of the answer to input.
func (e *Engine) MatchList(input, target string) []MatchResult {
	return e.Respond(input, target).Matches
}

// Respond answers input on behalf of target and reports which output was used.
func (e *Engine) Respond(input, target string) Response {
	rs := e.active.Load()
	a, ok := e.answer(rs, input, target, 0)
	if !ok {
		log.Debug().Str("input", input).Str("target", target).Msg("No match")
		return Response{OutputIdx: -1}
	}
	log.Debug().
		Str("input", input).
		Str("target", target).
		Uint64("ruleId", uint64(a.match.RuleID)).
		Int("inputIdx", a.match.InputIdx).
		Msg("Matched")
	return Response{Text: a.text, Matches: []MatchResult{a.match}, OutputIdx: a.outputIdx}
}

type answer struct {
	text      string
	match     MatchResult
	outputIdx int
}

type candidate struct {
	rule  *pattern.CompiledRule
	input int
	spec  Specificity
	caps  Captures
}

// best returns the most specific match over every rule open to target. Ties
// go to the rule seen first and, within a rule, to the first pattern.
func (e *Engine) best(rs *ruleSet, words nlp.WordList, target string) (candidate, bool) {
	var winner candidate
	found := false
	for i := range rs.rules {
		r := &rs.rules[i]
		if !r.HasTarget(target) {
			continue
		}
		for _, p := range r.Patterns {
			spec, caps, ok := Match(words, p)
			if !ok {
				continue
			}
			if !found || spec.Less(winner.spec) {
				winner = candidate{rule: r, input: p.InputIdx, spec: spec, caps: caps}
				found = true
			}
		}
	}
	return winner, found
}

func (e *Engine) answer(rs *ruleSet, input, target string, depth int) (answer, bool) {
	c, ok := e.best(rs, e.sanitizer.Normalize(input), target)
	if !ok {
		return answer{}, false
	}

	a := answer{match: MatchResult{RuleID: c.rule.ID, InputIdx: c.input}}
	if len(c.rule.Outputs) == 0 {
		a.outputIdx = -1
		return a, true
	}
	if n := len(c.rule.Outputs); n > 1 {
		a.outputIdx = e.rng.Int(0, n-1)
	}

	final := a
	resolve := func(redirect string) (string, bool) {
		if depth >= e.maxRedirects {
			log.Debug().Str("input", redirect).Int("depth", depth).Msg("Too many redirects")
			return "", false
		}
		inner, ok := e.answer(rs, redirect, target, depth+1)
		if ok {
			final = inner
		}
		return inner.text, ok
	}

	text, ok := template.Render(c.rule.Outputs[a.outputIdx], c.caps, resolve)
	if !ok {
		return answer{}, false
	}
	final.text = text
	return final, true
}

// Package score rates how much authoring work a rule tree shows. Richer
// constructs earn more points than plain question/answer pairs.
package score

import (
	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/preprocessor"
	"rgehrsitz/botmaster/internal/rules"
	"rgehrsitz/botmaster/internal/template"

	"github.com/rs/zerolog/log"
)

// Points per rule kind.
const (
	ConditionalPoints = 4
	VariablePoints    = 3
	WildcardPoints    = 2
	KeywordOpPoints   = 2
	SimplePoints      = 1
)

// Kind is the scoring category of a rule. Each rule falls in exactly one.
type Kind int

const (
	None Kind = iota // incomplete rule, no points
	Simple
	KeywordOp
	Wildcard
	Variable
	Conditional
)

var kindPoints = map[Kind]int{
	Simple:      SimplePoints,
	KeywordOp:   KeywordOpPoints,
	Wildcard:    WildcardPoints,
	Variable:    VariablePoints,
	Conditional: ConditionalPoints,
}

func (k Kind) Points() int { return kindPoints[k] }

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case KeywordOp:
		return "keyword"
	case Wildcard:
		return "wildcard"
	case Variable:
		return "variable"
	case Conditional:
		return "conditional"
	default:
		return "none"
	}
}

// Score counts rules per kind. Total is the sum of points.
type Score struct {
	Conditionals int `json:"conditionals"`
	Variables    int `json:"variables"`
	Wildcards    int `json:"wildcards"`
	KeywordOps   int `json:"keywordOps"`
	Simple       int `json:"simple"`
	Total        int `json:"total"`
}

func (s *Score) add(k Kind) {
	switch k {
	case Conditional:
		s.Conditionals++
	case Variable:
		s.Variables++
	case Wildcard:
		s.Wildcards++
	case KeywordOp:
		s.KeywordOps++
	case Simple:
		s.Simple++
	}
	s.Total += k.Points()
}

// Rules scores every ordinary rule of tree. Rules with the same inputs and
// outputs are scored once.
func Rules(tree *rules.Tree) Score {
	var s Score
	seen := make(map[string]bool)
	tree.Walk(func(_ int, r *rules.Rule) bool {
		if r.Type != rules.OrdinaryRule {
			return true
		}
		key, err := preprocessor.RuleKey(r)
		if err != nil {
			log.Debug().Err(err).Uint64("ruleId", uint64(r.ID)).Msg("Skipping rule in score")
			return true
		}
		if seen[key] {
			return true
		}
		seen[key] = true
		s.add(Classify(r))
		return true
	})
	return s
}

// Classify returns the scoring kind of r. A conditional output outranks a
// variable, which outranks operators in the inputs. A variable only counts
// when an output uses it.
func Classify(r *rules.Rule) Kind {
	if len(r.Inputs) == 0 || len(r.Outputs) == 0 {
		return None
	}

	var referenced bool
	for _, out := range r.Outputs {
		if len(template.Conditionals(out)) > 0 {
			return Conditional
		}
		if len(template.References(out)) > 0 {
			referenced = true
		}
	}

	var variable, keyword, wildcard bool
	for _, in := range r.Inputs {
		if preprocessor.IsKeywordInput(in) {
			keyword = true
			continue
		}
		for _, w := range (nlp.IdentitySanitizer{}).Normalize(in) {
			switch w.Kind() {
			case nlp.KindVariable:
				variable = true
			case nlp.KindWildcard:
				wildcard = true
			}
		}
	}

	switch {
	case variable && referenced:
		return Variable
	case keyword:
		return KeywordOp
	case wildcard:
		return Wildcard
	default:
		return Simple
	}
}

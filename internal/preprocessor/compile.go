package preprocessor

import (
	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/preprocessor/pattern"
	"rgehrsitz/botmaster/internal/rules"
)

// CompileRules compiles every matchable rule of tree, in traversal order,
// with the sanitizer the engine will use for input. Rules without inputs are
// kept so that provenance lookups by id still work; they never match.
func CompileRules(tree *rules.Tree, s nlp.Sanitizer) []pattern.CompiledRule {
	matchable := tree.Matchable()
	compiled := make([]pattern.CompiledRule, 0, len(matchable))

	for order, idx := range matchable {
		r := tree.Rule(idx)
		cr := pattern.CompiledRule{
			Order:   order,
			ID:      r.ID,
			Targets: append([]string(nil), r.Targets...),
			Outputs: append([]string(nil), r.Outputs...),
		}
		for inputIdx, input := range r.Inputs {
			for _, source := range ExpandInput(input) {
				p := pattern.Compile(inputIdx, source, s.Normalize(source))
				if len(p.Tokens) == 0 {
					continue
				}
				cr.Patterns = append(cr.Patterns, p)
			}
		}
		cr.Patterns = dedupePatterns(cr.Patterns)
		compiled = append(compiled, cr)
	}

	return compiled
}

package coverage

import (
	"sort"
	"strings"

	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/rules"
	"rgehrsitz/botmaster/internal/runtime"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"
)

// AnalyzedLine is a script line with the rule that answered it. RuleID 0
// means no ordinary rule answered; OutputIdx -1 means the line is not
// covered.
type AnalyzedLine struct {
	Question  string       `json:"question"`
	Answer    string       `json:"answer"`
	RuleID    rules.RuleID `json:"ruleId"`
	InputIdx  int          `json:"inputIdx"`
	OutputIdx int          `json:"outputIdx"`
	Hint      string       `json:"hint,omitempty"` // closest rule input for uncovered lines
}

// Covered reports whether a rule gave the expected answer.
func (l AnalyzedLine) Covered() bool {
	return l.OutputIdx != -1
}

// AnalyzedScript is a script after analysis.
type AnalyzedScript struct {
	Filename  string         `json:"filename"`
	Character string         `json:"character,omitempty"`
	Lines     []AnalyzedLine `json:"lines"`
}

// CoveredLines returns how many lines are covered.
func (s AnalyzedScript) CoveredLines() int {
	n := 0
	for _, l := range s.Lines {
		if l.Covered() {
			n++
		}
	}
	return n
}

// Coverage returns the percentage of covered lines. An empty script has no
// coverage.
func (s AnalyzedScript) Coverage() float64 {
	if len(s.Lines) == 0 {
		return 0
	}
	return 100 * float64(s.CoveredLines()) / float64(len(s.Lines))
}

// Global returns the percentage of covered lines over every script.
func Global(scripts []AnalyzedScript) float64 {
	total, covered := 0, 0
	for _, s := range scripts {
		total += len(s.Lines)
		covered += s.CoveredLines()
	}
	if total == 0 {
		return 0
	}
	return 100 * float64(covered) / float64(total)
}

// RuleUsage counts covered lines per rule and input.
func RuleUsage(scripts []AnalyzedScript) map[rules.RuleID]map[int]int {
	usage := make(map[rules.RuleID]map[int]int)
	for _, s := range scripts {
		for _, l := range s.Lines {
			if !l.Covered() || l.RuleID == 0 {
				continue
			}
			if usage[l.RuleID] == nil {
				usage[l.RuleID] = make(map[int]int)
			}
			usage[l.RuleID][l.InputIdx]++
		}
	}
	return usage
}

// Analyze asks every question of scripts to engine. tree must be the tree
// installed in engine; it provides the outputs that expected answers are
// compared with and the inputs hints are chosen from.
func Analyze(engine *runtime.Engine, tree *rules.Tree, scripts []Script) []AnalyzedScript {
	out := make([]AnalyzedScript, 0, len(scripts))
	for _, script := range scripts {
		hints := newHinter(tree, script.Target)
		analyzed := AnalyzedScript{Filename: script.Filename, Character: script.Character}
		for _, line := range script.Lines {
			analyzed.Lines = append(analyzed.Lines, analyzeLine(engine, tree, hints, script.Target, line))
		}
		log.Debug().
			Str("script", script.Filename).
			Float64("coverage", analyzed.Coverage()).
			Msg("Analyzed script")
		out = append(out, analyzed)
	}
	return out
}

func analyzeLine(engine *runtime.Engine, tree *rules.Tree, hints *hinter, target string, line Line) AnalyzedLine {
	al := AnalyzedLine{Question: line.Question, Answer: line.Answer, InputIdx: -1, OutputIdx: -1}

	r := engine.Respond(line.Question, target)
	if len(r.Matches) == 0 {
		al.Hint = hints.closest(line.Question)
		return al
	}
	m := r.Matches[0]
	al.RuleID, al.InputIdx = m.RuleID, m.InputIdx

	if line.Answer == "" || sameText(line.Answer, r.Text) {
		al.OutputIdx = r.OutputIdx
		return al
	}
	// Random outputs: the expected answer may be another output of the rule.
	if idx, ok := tree.Find(m.RuleID); ok {
		for i, output := range tree.Rule(idx).Outputs {
			if sameText(line.Answer, output) {
				al.OutputIdx = i
				return al
			}
		}
	}
	return al
}

func sameText(a, b string) bool {
	return nlp.Fold(strings.TrimSpace(a)) == nlp.Fold(strings.TrimSpace(b))
}

// hinter suggests the rule input closest to a question nothing answered.
type hinter struct {
	inputs []string // as authored
	plain  []string // words only, for fuzzy ranking
}

func newHinter(tree *rules.Tree, target string) *hinter {
	h := &hinter{}
	tree.Walk(func(_ int, r *rules.Rule) bool {
		if r.Type != rules.OrdinaryRule || !r.HasTarget(target) {
			return true
		}
		for _, input := range r.Inputs {
			plain := plainWords(input)
			if plain == "" {
				continue
			}
			h.inputs = append(h.inputs, input)
			h.plain = append(h.plain, plain)
		}
		return true
	})
	return h
}

func plainWords(input string) string {
	var words []string
	for _, w := range (nlp.DefaultSanitizer{}).Normalize(input) {
		if w.IsWord() && w.Original != "**" {
			words = append(words, w.Normalized)
		}
	}
	return strings.Join(words, " ")
}

// closest ranks inputs that fuzzily contain the question, and inputs the
// question fuzzily contains, and returns the best one.
func (h *hinter) closest(question string) string {
	q := strings.Join(strings.Fields(question), " ")
	if q == "" || len(h.plain) == 0 {
		return ""
	}

	matches := fuzzy.RankFindNormalizedFold(q, h.plain)
	for i, p := range h.plain {
		if d := fuzzy.RankMatchNormalizedFold(p, q); d >= 0 {
			matches = append(matches, fuzzy.Rank{Source: p, Target: q, Distance: d, OriginalIndex: i})
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Stable(matches)
	return h.inputs[matches[0].OriginalIndex]
}

package coverage

import (
	"os"
	"path/filepath"
	"testing"

	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/random"
	"rgehrsitz/botmaster/internal/rules"
	"rgehrsitz/botmaster/internal/runtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*runtime.Engine, *rules.Tree) {
	t.Helper()
	tree := rules.NewTree()
	tree.MustAdd(rules.Root, rules.Rule{ID: 1, Inputs: []string{"Hello", "Hi"}, Outputs: []string{"Hi!", "Hello!"}})
	tree.MustAdd(rules.Root, rules.Rule{ID: 2, Inputs: []string{"What is your name?"}, Outputs: []string{"R2D2"}})
	tree.MustAdd(rules.Root, rules.Rule{ID: 3, Inputs: []string{"secret"}, Outputs: []string{"42"}, Targets: []string{"admin"}})
	tree.MustAdd(rules.Root, rules.Rule{Type: rules.EvasiveRule, Outputs: []string{"What?"}})

	e := runtime.NewEngine(nlp.DefaultSanitizer{}, runtime.WithRandom(random.Fixed(0)))
	e.SetRules(tree)
	return e, tree
}

func TestAnalyze(t *testing.T) {
	engine, tree := setup(t)
	script := Script{
		Filename: "basic.yaml",
		Lines: []Line{
			{Question: "Hello", Answer: "Hello!"},
			{Question: "what is your name"},
			{Question: "What is your name", Answer: "C3PO"},
			{Question: "What is your nam", Answer: "R2D2"},
		},
	}

	analyzed := Analyze(engine, tree, []Script{script})
	require.Len(t, analyzed, 1)
	lines := analyzed[0].Lines
	require.Len(t, lines, 4)

	assert.Equal(t, AnalyzedLine{Question: "Hello", Answer: "Hello!", RuleID: 1, InputIdx: 0, OutputIdx: 1}, lines[0])
	assert.Equal(t, AnalyzedLine{Question: "what is your name", RuleID: 2, InputIdx: 0, OutputIdx: 0}, lines[1])

	assert.False(t, lines[2].Covered())
	assert.Equal(t, rules.RuleID(2), lines[2].RuleID)
	assert.Empty(t, lines[2].Hint)

	assert.False(t, lines[3].Covered())
	assert.Equal(t, rules.RuleID(0), lines[3].RuleID)
	assert.Equal(t, "What is your name?", lines[3].Hint)

	assert.Equal(t, 2, analyzed[0].CoveredLines())
	assert.InDelta(t, 50.0, analyzed[0].Coverage(), 0.001)
}

func TestAnalyze_Target(t *testing.T) {
	engine, tree := setup(t)

	scripts := []Script{
		{Filename: "guest.yaml", Lines: []Line{{Question: "secret"}}},
		{Filename: "admin.yaml", Target: "admin", Lines: []Line{{Question: "secret", Answer: "42"}}},
	}
	analyzed := Analyze(engine, tree, scripts)

	assert.False(t, analyzed[0].Lines[0].Covered())
	assert.Empty(t, analyzed[0].Lines[0].Hint, "Rules hidden from the user are not hinted")
	assert.True(t, analyzed[1].Lines[0].Covered())
	assert.Equal(t, rules.RuleID(3), analyzed[1].Lines[0].RuleID)
}

func TestGlobalAndUsage(t *testing.T) {
	scripts := []AnalyzedScript{
		{Lines: []AnalyzedLine{
			{RuleID: 1, InputIdx: 0, OutputIdx: 0},
			{RuleID: 1, InputIdx: 0, OutputIdx: 1},
			{RuleID: 1, InputIdx: 1, OutputIdx: 0},
			{RuleID: 0, InputIdx: -1, OutputIdx: -1},
		}},
		{},
	}

	assert.InDelta(t, 75.0, Global(scripts), 0.001)
	assert.Zero(t, scripts[1].Coverage())
	assert.Zero(t, Global(nil))
	assert.Equal(t, map[rules.RuleID]map[int]int{1: {0: 2, 1: 1}}, RuleUsage(scripts))
}

func TestReport(t *testing.T) {
	engine, tree := setup(t)
	script := Script{
		Filename: "basic.yaml",
		Lines: []Line{
			{Question: "Hello"},
			{Question: "What is your nam"},
		},
	}

	out := Report{Scripts: Analyze(engine, tree, []Script{script})}.String()
	assert.Contains(t, out, "basic.yaml: 50% (1 of 2 lines)")
	assert.Contains(t, out, `FAIL "What is your nam" (closest input: "What is your name?")`)
	assert.NotContains(t, out, "OK")
	assert.Contains(t, out, "Global coverage: 50%")

	verbose := Report{Scripts: Analyze(engine, tree, []Script{script}), Verbose: true}.String()
	assert.Contains(t, verbose, `OK   "Hello" -> rule 1, input 0`)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.yaml")
	data := `
character: Tom
lines:
  - question: Hello
    answer: Hi!
  - question: What is your name?
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "chat.yaml", s.Filename)
	assert.Equal(t, "Tom", s.Character)
	assert.Equal(t, []Line{{Question: "Hello", Answer: "Hi!"}, {Question: "What is your name?"}}, s.Lines)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseScript([]byte("lines: [oops"))
	assert.Error(t, err)
}

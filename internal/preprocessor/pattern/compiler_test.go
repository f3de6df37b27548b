package pattern

import (
	"testing"

	"rgehrsitz/botmaster/internal/nlp"

	"github.com/stretchr/testify/assert"
)

func TestOpString(t *testing.T) {
	assert.Equal(t, "WORD", OpWord.String())
	assert.Equal(t, "UNDERSCORE", OpUnderscore.String())
	assert.Equal(t, "UNKNOWN_OP(42)", Op(42).String())
	assert.True(t, OpStar.IsWildcard())
	assert.False(t, OpVariable.IsWildcard())
}

func TestCompile(t *testing.T) {
	words := nlp.WordList{
		{Original: "_", Normalized: "_"},
		{Original: "Cars", Normalized: "cars", Lemma: "car"},
		{Original: "-", Normalized: "-"},
		{Original: "[x]", Normalized: "[x]"},
		{Original: "*", Normalized: "*"},
		{Original: "!", Normalized: "!"},
	}
	p := Compile(1, "_ Cars - [x] *!", words)

	assert.Equal(t, []Token{
		{Op: OpUnderscore},
		{Op: OpWord, Text: "car"},
		{Op: OpSymbol, Text: "-"},
		{Op: OpVariable, Name: "x"},
		{Op: OpStar},
	}, p.Tokens)
	assert.Equal(t, 2, p.Wildcards())
	assert.Equal(t, 1, p.Variables())
	assert.True(t, p.HasPriorityWildcard())
	assert.Equal(t, "UNDERSCORE WORD(car) SYMBOL(-) VARIABLE(x) STAR", p.String())
}

func TestCompiledRuleHasTarget(t *testing.T) {
	open := CompiledRule{}
	assert.True(t, open.HasTarget(""))
	assert.True(t, open.HasTarget("anyone"))

	restricted := CompiledRule{Targets: []string{"user1@gmail.com"}}
	assert.True(t, restricted.HasTarget("user1@gmail.com"))
	assert.False(t, restricted.HasTarget("user3@gmail.com"))
	assert.False(t, restricted.HasTarget(""))
}

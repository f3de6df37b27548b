package runtime

import (
	"testing"

	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/preprocessor/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(source string) pattern.Pattern {
	return pattern.Compile(0, source, nlp.IdentitySanitizer{}.Normalize(source))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		ok      bool
		stars   []string
		vars    map[string]string
	}{
		{"exact", "Hello", "hello", true, nil, map[string]string{}},
		{"trailing symbols ignored", "Hello", "Hello!!", true, nil, map[string]string{}},
		{"too long", "Hello", "Hello there", false, nil, nil},
		{"trailing star", "Hello *", "Hello how are you", true, []string{"how are you"}, map[string]string{}},
		{"star needs a token", "Hello *", "Hello", false, nil, nil},
		{"leading underscore", "_ cars", "Do you like cars", true, []string{"Do you like"}, map[string]string{}},
		{"two wildcards", "_ cars *", "Have you seen the latest cars that BMW have launched?", true,
			[]string{"Have you seen the latest", "that BMW have launched"}, map[string]string{}},
		{"variable", "I play [Sport]", "I play tennis", true, nil, map[string]string{"sport": "tennis"}},
		{"variable takes one token", "I play [sport]", "I play table tennis", false, nil, nil},
		{"inner symbol", "a - b", "a - b", true, nil, map[string]string{}},
		{"inner symbol mismatch", "a - b", "a + b", false, nil, nil},
		{"symbol is not a word", "I play [sport]", "I play -", false, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, caps, ok := Match(nlp.IdentitySanitizer{}.Normalize(tt.input), compile(tt.pattern))
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.stars, caps.Stars)
			assert.Equal(t, tt.vars, caps.Vars)
		})
	}
}

func TestMatch_Specificity(t *testing.T) {
	input := nlp.IdentitySanitizer{}.Normalize("Do you like cars")

	exact, _, ok := Match(input, compile("Do you like cars"))
	require.True(t, ok)
	assert.Equal(t, Specificity{Tier: TierExact}, exact)

	variable, _, ok := Match(input, compile("Do you like [thing]"))
	require.True(t, ok)
	assert.Equal(t, Specificity{Tier: TierVariable, Variables: 1}, variable)

	underscore, _, ok := Match(input, compile("_ cars"))
	require.True(t, ok)
	assert.Equal(t, Specificity{Tier: TierWildcard, Wildcards: 1, Absorbed: 3}, underscore)

	star, _, ok := Match(input, compile("Do you like *"))
	require.True(t, ok)
	assert.Equal(t, Specificity{Tier: TierWildcard, Priority: 1, Wildcards: 1, Absorbed: 1}, star)

	assert.True(t, exact.Less(variable))
	assert.True(t, variable.Less(underscore))
	assert.True(t, underscore.Less(star))
	assert.False(t, star.Less(star))
}

func TestSpecificityLess(t *testing.T) {
	base := Specificity{Tier: TierWildcard, Wildcards: 1, Absorbed: 2}

	assert.True(t, Specificity{Tier: TierWildcard, Wildcards: 1, Absorbed: 1}.Less(base), "Shorter spans win")
	assert.True(t, base.Less(Specificity{Tier: TierWildcard, Wildcards: 2, Absorbed: 1}), "Fewer spans win")
	assert.False(t, base.Less(base))
}

func TestMatch_ManyWildcardsTerminates(t *testing.T) {
	input := nlp.IdentitySanitizer{}.Normalize("a a a a a a a a a a a a a a a a a a a a a a a a a a a a a a b")
	_, _, ok := Match(input, compile("* * * * * * * * * * c"))
	assert.False(t, ok)
}

func TestMatch_EmptyPattern(t *testing.T) {
	_, _, ok := Match(nlp.IdentitySanitizer{}.Normalize("anything"), pattern.Pattern{})
	assert.False(t, ok)
}

func TestMatch_Lemmas(t *testing.T) {
	s := nlp.LemmatizingSanitizer{
		Base:       nlp.DefaultSanitizer{},
		Lemmatizer: nlp.NewDictionaryLemmatizer(map[string]string{"cars": "car"}),
	}
	p := pattern.Compile(0, "I like car", s.Normalize("I like car"))

	_, _, ok := Match(s.Normalize("I like CARS"), p)
	assert.True(t, ok)
}

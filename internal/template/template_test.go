package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caps(stars []string, vars map[string]string) Captures {
	return Captures{Stars: stars, Vars: vars}
}

func TestRender_Substitution(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		caps Captures
		want string
	}{
		{"plain", "Hi!", Captures{}, "Hi!"},
		{"variable", "You said [hecho]", caps(nil, map[string]string{"hecho": "nada"}), "You said nada"},
		{"variable case", "You said [Hecho]", caps(nil, map[string]string{"hecho": "nada"}), "You said nada"},
		{"unbound variable", "You said [hecho]", Captures{}, "You said [hecho]"},
		{"star", "So <star/>?", caps([]string{"robots"}, nil), "So robots?"},
		{"star index", `<star index="2"/> then <star index="1"/>`, caps([]string{"a", "b"}, nil), "b then a"},
		{"missing star", "x<star index=\"3\"/>y", caps([]string{"a"}, nil), "xy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Render(tt.tmpl, tt.caps, nil)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Conditionals(t *testing.T) {
	const tmpl = "{if [sth] = soccer}Yes{else}No"

	got, ok := Render(tmpl, caps(nil, map[string]string{"sth": "Soccer"}), nil)
	require.True(t, ok)
	assert.Equal(t, "Yes", got)

	got, _ = Render(tmpl, caps(nil, map[string]string{"sth": "chess"}), nil)
	assert.Equal(t, "No", got)

	got, _ = Render("I {if [x] != tea}don't {endif}like tea", caps(nil, map[string]string{"x": "coffee"}), nil)
	assert.Equal(t, "I don't like tea", got)

	got, _ = Render("{if [x] = té}ok{endif}", caps(nil, map[string]string{"x": "TE"}), nil)
	assert.Equal(t, "ok", got, "comparison ignores case and accents")
}

func TestRender_MalformedConditionalIsText(t *testing.T) {
	got, ok := Render("{if sth = soccer}Yes{else}No", Captures{}, nil)
	require.True(t, ok)
	assert.Equal(t, "{if sth = soccer}Yes{else}No", got)
	assert.Empty(t, Conditionals("{if sth = soccer}Yes"))
}

func TestRender_Redirect(t *testing.T) {
	resolve := func(text string) (string, bool) {
		if strings.EqualFold(text, "cats") {
			return "I hate cats!", true
		}
		return "", false
	}

	got, ok := Render("<srai><star/></srai>", caps([]string{"cats"}, nil), resolve)
	require.True(t, ok)
	assert.Equal(t, "I hate cats!", got)

	_, ok = Render("<srai><star/></srai>", caps([]string{"robots"}, nil), resolve)
	assert.False(t, ok)

	_, ok = Render("<srai>cats</srai>", Captures{}, nil)
	assert.False(t, ok, "a redirect without resolver cannot be answered")
}

func TestRender_NestedRedirect(t *testing.T) {
	var asked []string
	resolve := func(text string) (string, bool) {
		asked = append(asked, text)
		return strings.ToUpper(text), true
	}

	got, ok := Render("a <srai>b <srai>c</srai></srai> d", Captures{}, resolve)
	require.True(t, ok)
	assert.Equal(t, "a B C d", got)
	assert.Equal(t, []string{"c", "b C"}, asked)
}

func TestRender_StrayClosingTag(t *testing.T) {
	got, ok := Render("x </srai> y", Captures{}, nil)
	require.True(t, ok)
	assert.Equal(t, "x </srai> y", got)
}

func TestReferencesAndConditionals(t *testing.T) {
	tmpl := "{if [Sth] = soccer}Yes [name]{else}No [sth]"
	assert.Equal(t, []string{"sth", "name"}, References(tmpl))
	assert.Equal(t, []Condition{{Variable: "sth", Operator: "=", Value: "soccer"}}, Conditionals(tmpl))
	assert.True(t, HasRedirect("<srai>x</srai>"))
	assert.False(t, HasRedirect("x"))
}

// internal/template/condition.go

package template

import (
	"regexp"
	"strings"

	"rgehrsitz/botmaster/internal/nlp"
)

const (
	OperatorEqual    = "="
	OperatorNotEqual = "!="
)

var SupportedOperators = []string{
	OperatorEqual,
	OperatorNotEqual,
}

var (
	ifRegex    = regexp.MustCompile(`(?i)\{if\s+\[([\p{L}\p{N}_\-]+)\]\s*(!=|=)\s*([^}]*)\}`)
	elseRegex  = regexp.MustCompile(`(?i)\{else\}`)
	endifRegex = regexp.MustCompile(`(?i)\{endif\}`)
)

// Condition is the head of an {if [var] op value} block.
type Condition struct {
	Variable string
	Operator string
	Value    string
}

// Eval compares the bound value of the variable with the condition value,
// ignoring case, accents and surrounding blanks. Unbound variables compare
// as the empty string.
func (c Condition) Eval(caps Captures) bool {
	bound, _ := caps.Var(c.Variable)
	equal := nlp.Fold(strings.TrimSpace(bound)) == nlp.Fold(strings.TrimSpace(c.Value))
	if c.Operator == OperatorNotEqual {
		return !equal
	}
	return equal
}

// Conditionals returns every well-formed conditional head in tmpl.
func Conditionals(tmpl string) []Condition {
	var out []Condition
	for _, m := range ifRegex.FindAllStringSubmatch(tmpl, -1) {
		out = append(out, Condition{
			Variable: strings.ToLower(m[1]),
			Operator: m[2],
			Value:    strings.TrimSpace(m[3]),
		})
	}
	return out
}

// expandConditionals replaces every {if}...{else}...{endif} block with the
// branch selected by caps. {else} and {endif} are optional; a block without
// {endif} runs to the end of the template.
func expandConditionals(tmpl string, caps Captures) string {
	var b strings.Builder
	for {
		loc := ifRegex.FindStringSubmatchIndex(tmpl)
		if loc == nil {
			b.WriteString(tmpl)
			return b.String()
		}
		b.WriteString(tmpl[:loc[0]])

		cond := Condition{
			Variable: strings.ToLower(tmpl[loc[2]:loc[3]]),
			Operator: tmpl[loc[4]:loc[5]],
			Value:    strings.TrimSpace(tmpl[loc[6]:loc[7]]),
		}
		body, after := cutBlock(tmpl[loc[1]:], endifRegex)
		then, otherwise := cutBlock(body, elseRegex)
		if cond.Eval(caps) {
			b.WriteString(then)
		} else {
			b.WriteString(otherwise)
		}
		tmpl = after
	}
}

// cutBlock splits s around the first match of sep. Without a match the whole
// of s is the first part.
func cutBlock(s string, sep *regexp.Regexp) (before, after string) {
	loc := sep.FindStringIndex(s)
	if loc == nil {
		return s, ""
	}
	return s[:loc[0]], s[loc[1]:]
}

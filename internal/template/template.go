// Package template renders rule outputs: variable and wildcard substitution,
// conditionals and <srai> redirects to other rules.
package template

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	sraiOpen  = "<srai>"
	sraiClose = "</srai>"
)

var (
	starRegex = regexp.MustCompile(`<star(?:\s+index\s*=\s*"(\d+)")?\s*/>`)
	varRegex  = regexp.MustCompile(`\[([\p{L}\p{N}_\-]+)\]`)
)

// Captures holds what a pattern match bound: one entry per wildcard, in
// pattern order, and variables by lower-cased name.
type Captures struct {
	Stars []string
	Vars  map[string]string
}

// Var returns the value bound to name.
func (c Captures) Var(name string) (string, bool) {
	v, ok := c.Vars[strings.ToLower(name)]
	return v, ok
}

// Star returns the n-th wildcard capture, counting from 1.
func (c Captures) Star(n int) string {
	if n < 1 || n > len(c.Stars) {
		return ""
	}
	return c.Stars[n-1]
}

// Resolver answers redirected text. It reports false when nothing answers.
type Resolver func(text string) (string, bool)

// Render expands tmpl with caps. Redirects are resolved through resolve; if
// any redirect is unresolved, or resolve is nil, Render reports false.
func Render(tmpl string, caps Captures, resolve Resolver) (string, bool) {
	root := parse(expandConditionals(tmpl, caps))
	out, ok := root.render(caps, resolve)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(out), true
}

// HasRedirect reports whether tmpl forwards to another rule.
func HasRedirect(tmpl string) bool {
	return strings.Contains(tmpl, sraiOpen)
}

// References returns the lower-cased variable names tmpl uses, including
// the ones tested by conditionals.
func References(tmpl string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range varRegex.FindAllStringSubmatch(tmpl, -1) {
		name := strings.ToLower(m[1])
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func substitute(s string, caps Captures) string {
	s = starRegex.ReplaceAllStringFunc(s, func(m string) string {
		n := 1
		if sub := starRegex.FindStringSubmatch(m); sub[1] != "" {
			n, _ = strconv.Atoi(sub[1])
		}
		return caps.Star(n)
	})
	return varRegex.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := caps.Var(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
}

// segment is either literal text or a redirect holding nested segments.
type segment struct {
	text     string
	redirect bool
	children []*segment
}

func parse(s string) *segment {
	root := &segment{}
	stack := []*segment{root}
	for s != "" {
		top := stack[len(stack)-1]
		open := strings.Index(s, sraiOpen)
		closing := strings.Index(s, sraiClose)
		if open < 0 && closing < 0 {
			top.children = append(top.children, &segment{text: s})
			break
		}
		if open >= 0 && (closing < 0 || open < closing) {
			top.children = append(top.children, &segment{text: s[:open]})
			seg := &segment{redirect: true}
			top.children = append(top.children, seg)
			stack = append(stack, seg)
			s = s[open+len(sraiOpen):]
			continue
		}
		top.children = append(top.children, &segment{text: s[:closing]})
		if len(stack) > 1 {
			stack = stack[:len(stack)-1]
		} else {
			// stray closing tag
			top.children = append(top.children, &segment{text: sraiClose})
		}
		s = s[closing+len(sraiClose):]
	}
	return root
}

func (s *segment) render(caps Captures, resolve Resolver) (string, bool) {
	var b strings.Builder
	for _, child := range s.children {
		if !child.redirect {
			b.WriteString(substitute(child.text, caps))
			continue
		}
		inner, ok := child.render(caps, resolve)
		if !ok || resolve == nil {
			return "", false
		}
		out, ok := resolve(strings.TrimSpace(inner))
		if !ok {
			return "", false
		}
		b.WriteString(out)
	}
	return b.String(), true
}

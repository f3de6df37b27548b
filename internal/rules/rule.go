// internal/rules/rule.go

package rules

import (
	"fmt"
	"strings"
)

// RuleID identifies a rule. Zero means "no id" and is what an unmatched
// response reports.
type RuleID uint64

// Type tells how a rule takes part in matching. The zero value is an
// ordinary rule so that rule files may omit it.
type Type int

const (
	OrdinaryRule  Type = iota // input patterns -> outputs
	ContainerRule             // organizational grouping, never matched
	EvasiveRule               // "I don't understand" fallback
	RootRule                  // tree root, never matched
)

var typeNames = map[Type]string{
	RootRule:      "root",
	ContainerRule: "container",
	OrdinaryRule:  "ordinary",
	EvasiveRule:   "evasive",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) MarshalText() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown rule type %d", int(t))
	}
	return []byte(name), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	if name == "" {
		*t = OrdinaryRule
		return nil
	}
	for typ, n := range typeNames {
		if n == name {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown rule type %q", string(text))
}

// Rule is an authored mapping from input patterns to output templates.
type Rule struct {
	ID      RuleID
	Name    string
	Type    Type
	Inputs  []string
	Outputs []string
	Targets []string // empty means every user
}

// Matchable reports whether the rule takes part in matching.
func (r *Rule) Matchable() bool {
	return r.Type == OrdinaryRule || r.Type == EvasiveRule
}

// HasTarget reports whether user may be answered by this rule. Rules with no
// targets answer everybody; the empty user only sees those.
func (r *Rule) HasTarget(user string) bool {
	if len(r.Targets) == 0 {
		return true
	}
	if user == "" {
		return false
	}
	for _, t := range r.Targets {
		if t == user {
			return true
		}
	}
	return false
}

func (r *Rule) clone() Rule {
	c := *r
	c.Inputs = append([]string(nil), r.Inputs...)
	c.Outputs = append([]string(nil), r.Outputs...)
	c.Targets = append([]string(nil), r.Targets...)
	return c
}

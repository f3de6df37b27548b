// internal/rules/tree.go

package rules

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownParent = errors.New("unknown parent rule")
	ErrRootType      = errors.New("only the tree root can have type root")
)

// Root is the arena index of the tree root.
const Root = 0

type node struct {
	rule     Rule
	parent   int
	children []int
}

// Tree is an arena of rules addressed by index. Index Root always holds the
// root; every other rule has exactly one parent. A Tree is not safe for
// concurrent mutation, but a tree that is no longer mutated can be read from
// any number of goroutines.
type Tree struct {
	nodes []node
}

// NewTree returns a tree holding only the root.
func NewTree() *Tree {
	return &Tree{
		nodes: []node{{rule: Rule{Type: RootRule}, parent: -1}},
	}
}

// Add appends r as the last child of parent and returns its index.
func (t *Tree) Add(parent int, r Rule) (int, error) {
	if parent < 0 || parent >= len(t.nodes) {
		return -1, fmt.Errorf("%w: %d", ErrUnknownParent, parent)
	}
	if r.Type == RootRule {
		return -1, ErrRootType
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{rule: r.clone(), parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, idx)
	return idx, nil
}

// MustAdd is Add for statically known trees; it panics on error.
func (t *Tree) MustAdd(parent int, r Rule) int {
	idx, err := t.Add(parent, r)
	if err != nil {
		panic(err)
	}
	return idx
}

// Len returns the number of rules including the root.
func (t *Tree) Len() int { return len(t.nodes) }

// Rule returns the rule stored at idx.
func (t *Tree) Rule(idx int) *Rule { return &t.nodes[idx].rule }

// Parent returns the parent index of idx, or -1 for the root.
func (t *Tree) Parent(idx int) int { return t.nodes[idx].parent }

// Children returns the child indexes of idx in insertion order.
func (t *Tree) Children(idx int) []int { return t.nodes[idx].children }

// Walk visits every rule depth first, parents before children and siblings
// in insertion order. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(idx int, r *Rule) bool) {
	if len(t.nodes) == 0 {
		return
	}
	stack := []int{Root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(idx, &t.nodes[idx].rule) {
			return
		}
		children := t.nodes[idx].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Matchable returns the indexes of ordinary and evasive rules in traversal
// order. This order decides ties between equally specific matches.
func (t *Tree) Matchable() []int {
	var out []int
	t.Walk(func(idx int, r *Rule) bool {
		if r.Matchable() {
			out = append(out, idx)
		}
		return true
	})
	return out
}

// Find returns the index of the first matchable rule with the given id.
func (t *Tree) Find(id RuleID) (int, bool) {
	found := -1
	t.Walk(func(idx int, r *Rule) bool {
		if r.Matchable() && r.ID == id {
			found = idx
			return false
		}
		return true
	})
	return found, found >= 0
}

// Evasives returns the outputs of every evasive rule in traversal order.
func (t *Tree) Evasives() []string {
	var out []string
	t.Walk(func(_ int, r *Rule) bool {
		if r.Type == EvasiveRule {
			out = append(out, r.Outputs...)
		}
		return true
	})
	return out
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	c := &Tree{nodes: make([]node, len(t.nodes))}
	for i, n := range t.nodes {
		c.nodes[i] = node{
			rule:     n.rule.clone(),
			parent:   n.parent,
			children: append([]int(nil), n.children...),
		}
	}
	return c
}

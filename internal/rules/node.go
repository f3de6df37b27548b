// internal/rules/node.go

package rules

// Node is the nested form of a rule used by rule files.
type Node struct {
	ID       RuleID   `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type     Type     `json:"type,omitempty" yaml:"type,omitempty"`
	Inputs   []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs  []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Targets  []string `json:"targets,omitempty" yaml:"targets,omitempty"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// FromNodes builds a tree whose root children are nodes.
func FromNodes(nodes []Node) (*Tree, error) {
	t := NewTree()
	if err := t.addNodes(Root, nodes); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) addNodes(parent int, nodes []Node) error {
	for _, n := range nodes {
		idx, err := t.Add(parent, Rule{
			ID:      n.ID,
			Name:    n.Name,
			Type:    n.Type,
			Inputs:  n.Inputs,
			Outputs: n.Outputs,
			Targets: n.Targets,
		})
		if err != nil {
			return err
		}
		if err := t.addNodes(idx, n.Children); err != nil {
			return err
		}
	}
	return nil
}

// Nodes returns the nested form of the root's children.
func (t *Tree) Nodes() []Node {
	return t.nodesOf(Root)
}

func (t *Tree) nodesOf(idx int) []Node {
	children := t.Children(idx)
	if len(children) == 0 {
		return nil
	}
	out := make([]Node, 0, len(children))
	for _, c := range children {
		r := t.Rule(c)
		out = append(out, Node{
			ID:       r.ID,
			Name:     r.Name,
			Type:     r.Type,
			Inputs:   r.Inputs,
			Outputs:  r.Outputs,
			Targets:  r.Targets,
			Children: t.nodesOf(c),
		})
	}
	return out
}

package preprocessor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/rules"
	"rgehrsitz/botmaster/internal/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Format is a rule file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// DetectFormat picks the format from the file extension; anything that is
// not .yaml or .yml is read as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseRules reads a list of rule nodes and builds the rule tree.
func ParseRules(data []byte, format Format) (*rules.Tree, error) {
	log.Info().Msg("Started parsing rules...")
	var nodes []rules.Node
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &nodes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rules YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &nodes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rules JSON: %w", err)
		}
	}

	tree, err := rules.FromNodes(nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule tree: %w", err)
	}
	log.Info().Int("rules", tree.Len()-1).Msg("Parsed rules")
	return tree, nil
}

// LoadRules reads, parses and validates the rule file at path.
func LoadRules(path string) (*rules.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}
	tree, err := ParseRules(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := ValidateRules(tree); err != nil {
		return nil, fmt.Errorf("%s: invalid rules: %w", path, err)
	}
	return tree, nil
}

// ValidationError describes one problem of one rule.
type ValidationError struct {
	RuleID  rules.RuleID
	Name    string
	Input   string
	Message string
}

func (e *ValidationError) Error() string {
	label := fmt.Sprintf("rule %d", e.RuleID)
	if e.Name != "" {
		label = fmt.Sprintf("rule %d (%s)", e.RuleID, e.Name)
	}
	if e.Input != "" {
		return fmt.Sprintf("%s, input %q: %s", label, e.Input, e.Message)
	}
	return fmt.Sprintf("%s: %s", label, e.Message)
}

// ValidateRules checks the authoring constraints the engine relies on but
// does not enforce. Every problem found is returned, joined.
func ValidateRules(tree *rules.Tree) error {
	log.Info().Msg("Started validating rules...")
	var errs []error
	seen := make(map[rules.RuleID]bool)

	tree.Walk(func(_ int, r *rules.Rule) bool {
		if !r.Matchable() {
			return true
		}
		fail := func(input, msg string) {
			errs = append(errs, &ValidationError{RuleID: r.ID, Name: r.Name, Input: input, Message: msg})
		}

		if r.ID != 0 {
			if seen[r.ID] {
				fail("", "duplicate rule id")
			}
			seen[r.ID] = true
		}
		if r.Type == rules.OrdinaryRule && len(r.Inputs) == 0 {
			fail("", "rule must have at least one input")
		}
		if len(r.Outputs) == 0 {
			fail("", "rule must have at least one output")
		}

		declared := validateInputs(r, fail)
		validateOutputs(r, declared, fail)
		return true
	})

	return errors.Join(errs...)
}

// validateInputs returns the variable name declared by the rule inputs.
func validateInputs(r *rules.Rule, fail func(input, msg string)) string {
	declared := ""
	for _, input := range r.Inputs {
		if strings.TrimSpace(input) == "" {
			fail(input, "input cannot be empty")
			continue
		}
		var vars []string
		for _, w := range (nlp.IdentitySanitizer{}).Normalize(input) {
			if w.IsVariable() {
				vars = append(vars, w.VariableName())
			}
		}
		if len(vars) > 1 {
			fail(input, "a rule input cannot contain two or more variables")
			continue
		}
		if len(vars) == 1 {
			if declared != "" && declared != vars[0] {
				fail(input, "rules cannot contain two or more different variable names")
				continue
			}
			declared = vars[0]
		}
	}
	return declared
}

func validateOutputs(r *rules.Rule, declared string, fail func(input, msg string)) {
	for _, output := range r.Outputs {
		for _, cond := range template.Conditionals(output) {
			if cond.Variable != declared {
				fail("", fmt.Sprintf("output conditional refers to undeclared variable [%s]", cond.Variable))
			}
		}
	}
}

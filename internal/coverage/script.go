// Package coverage replays scripted conversations against a rule set and
// reports which lines the rules answer.
package coverage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Line is one question of a script and, optionally, the answer expected.
type Line struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer,omitempty"`
}

// Script is a scripted conversation.
type Script struct {
	Filename  string `yaml:"-"`
	Character string `yaml:"character,omitempty"`
	Target    string `yaml:"target,omitempty"` // user the questions are asked as
	Lines     []Line `yaml:"lines"`
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to unmarshal script: %w", err)
	}
	return s, nil
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("error reading script file: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	s.Filename = filepath.Base(path)
	return s, nil
}

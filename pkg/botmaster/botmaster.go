// Package botmaster is the public entry point: load a rule file and ask
// questions.
package botmaster

import (
	"fmt"

	"rgehrsitz/botmaster/internal/config"
	"rgehrsitz/botmaster/internal/preprocessor"
	"rgehrsitz/botmaster/internal/rules"
	"rgehrsitz/botmaster/internal/runtime"
)

// Config holds the bot settings: sanitizer, random seed, redirect limit,
// logging and lemmas.
type Config = config.Config

// LogConfig holds the logging settings of a Config.
type LogConfig = config.LogConfig

// Sanitizer names accepted in Config.Sanitizer.
const (
	SanitizerDefault  = config.SanitizerDefault
	SanitizerIdentity = config.SanitizerIdentity
)

// ErrUnknownSanitizer is returned when Config.Sanitizer names no sanitizer.
var ErrUnknownSanitizer = config.ErrUnknownSanitizer

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads settings from the YAML file at path (may be empty), a .env
// file and BOTMASTER_* environment variables.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// Answer is the reply to one question.
type Answer struct {
	Text     string
	RuleID   uint64 // 0 when no rule matched
	InputIdx int
	Matched  bool // false for evasive replies and silence
}

// Bot answers questions with the rules of one file.
type Bot struct {
	tree *rules.Tree
	chat *runtime.Chatbot
}

// Load reads and validates the rules at path and builds a bot with cfg.
func Load(path string, cfg Config) (*Bot, error) {
	tree, err := preprocessor.LoadRules(path)
	if err != nil {
		return nil, err
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("error creating engine: %w", err)
	}
	engine.SetRules(tree)
	return &Bot{tree: tree, chat: runtime.NewChatbot(engine)}, nil
}

// Ask answers text using only rules open to everyone.
func (b *Bot) Ask(text string) Answer {
	return b.AskAs(text, "")
}

// AskAs answers text on behalf of user.
func (b *Bot) AskAs(text, user string) Answer {
	reply := b.chat.Respond(text, user)
	a := Answer{Text: reply.Text}
	if len(reply.Matches) > 0 {
		a.RuleID = uint64(reply.Matches[0].RuleID)
		a.InputIdx = reply.Matches[0].InputIdx
		a.Matched = true
	}
	return a
}

// Rules returns the number of rules that take part in matching.
func (b *Bot) Rules() int {
	return len(b.tree.Matchable())
}

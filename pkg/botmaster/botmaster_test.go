package botmaster_test

import (
	"os"
	"path/filepath"
	"testing"

	"rgehrsitz/botmaster/pkg/botmaster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesYAML = `
- name: greetings
  type: container
  children:
    - id: 1
      inputs: ["Hello", "Hi", "Hello *"]
      outputs: ["Hi!"]
    - id: 2
      inputs: ["What is your name?"]
      outputs: ["R2D2"]
      targets: ["user1@gmail.com"]
- type: evasive
  outputs: ["Sorry, I don't understand"]
`

func writeRules(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestBot(t *testing.T) {
	bot, err := botmaster.Load(writeRules(t, "bot.yaml", rulesYAML), botmaster.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, bot.Rules())

	assert.Equal(t, botmaster.Answer{Text: "Hi!", RuleID: 1, InputIdx: 2, Matched: true}, bot.Ask("Hello there"))
	assert.Equal(t, botmaster.Answer{Text: "R2D2", RuleID: 2, Matched: true}, bot.AskAs("what is your name", "user1@gmail.com"))
	assert.Equal(t, botmaster.Answer{Text: "Sorry, I don't understand"}, bot.Ask("what is your name"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := botmaster.Load(filepath.Join(t.TempDir(), "missing.yaml"), botmaster.DefaultConfig())
	assert.Error(t, err)

	_, err = botmaster.Load(writeRules(t, "bad.json", `[{"id": 1, "inputs": ["x"]}]`), botmaster.DefaultConfig())
	assert.Error(t, err)

	cfg := botmaster.DefaultConfig()
	cfg.Sanitizer = "porter"
	_, err = botmaster.Load(writeRules(t, "bot.yaml", rulesYAML), cfg)
	assert.ErrorIs(t, err, botmaster.ErrUnknownSanitizer)
}

func TestLoad_IdentitySanitizer(t *testing.T) {
	cfg := botmaster.Config{Sanitizer: botmaster.SanitizerIdentity, Seed: 1, MaxRedirects: 8, Log: botmaster.LogConfig{Level: "info"}}
	bot, err := botmaster.Load(writeRules(t, "bot.yaml", rulesYAML), cfg)
	require.NoError(t, err)

	assert.Equal(t, botmaster.Answer{Text: "Hi!", RuleID: 1, Matched: true}, bot.Ask("HELLO;!?"))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botmaster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sanitizer: identity
seed: 7
"), 0o644))

	cfg, err := botmaster.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, botmaster.SanitizerIdentity, cfg.Sanitizer)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, botmaster.DefaultConfig().MaxRedirects, cfg.MaxRedirects)
}

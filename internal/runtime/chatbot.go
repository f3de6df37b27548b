// runtime/chatbot.go

package runtime

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Reply is what a Chatbot said and why.
type Reply struct {
	Text      string
	Matches   []MatchResult
	OutputIdx int
	Evasive   bool // no rule matched and an evasive output was used
}

// Exchange is one entry of the conversation history.
type Exchange struct {
	Time   time.Time
	Target string
	Input  string
	Reply  Reply
}

// Chatbot wraps an Engine with an evasive fallback and a conversation log.
type Chatbot struct {
	engine *Engine

	mu      sync.Mutex
	history []Exchange
}

func NewChatbot(engine *Engine) *Chatbot {
	return &Chatbot{engine: engine}
}

// Engine returns the wrapped engine.
func (c *Chatbot) Engine() *Engine {
	return c.engine
}

// Respond answers input for target. When no rule matches, one of the evasive
// outputs is chosen at random; evasive replies carry no matches.
func (c *Chatbot) Respond(input, target string) Reply {
	r := c.engine.Respond(input, target)
	reply := Reply{Text: r.Text, Matches: r.Matches, OutputIdx: r.OutputIdx}

	if len(r.Matches) == 0 {
		if evasives := c.engine.Evasives(); len(evasives) > 0 {
			idx := c.engine.rng.Int(0, len(evasives)-1)
			reply = Reply{Text: evasives[idx], OutputIdx: idx, Evasive: true}
			log.Debug().Str("input", input).Int("outputIdx", idx).Msg("Evasive reply")
		}
	}

	c.mu.Lock()
	c.history = append(c.history, Exchange{Time: time.Now(), Target: target, Input: input, Reply: reply})
	c.mu.Unlock()
	return reply
}

// History returns a copy of the conversation so far.
func (c *Chatbot) History() []Exchange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Exchange(nil), c.history...)
}

func (c *Chatbot) ClearHistory() {
	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
}

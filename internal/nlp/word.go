// internal/nlp/word.go

package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Reserved pattern markers.
const (
	StarOp       = "*"
	UnderscoreOp = "_"
)

var varDeclRegex = regexp.MustCompile(`^\[[\p{L}\p{N}_\-]+\]$`)

// Kind classifies a word. Exactly one kind applies to any word.
type Kind int

const (
	KindWord Kind = iota
	KindSymbol
	KindVariable
	KindWildcard
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindSymbol:
		return "symbol"
	case KindVariable:
		return "variable"
	case KindWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Word is a single token produced by a Sanitizer.
type Word struct {
	Original   string   `json:"original"`
	Normalized string   `json:"normalized"`
	Lemma      string   `json:"lemma,omitempty"`
	PosTag     string   `json:"posTag,omitempty"`
	AltSpells  []string `json:"altSpells,omitempty"`
}

func (w Word) IsStar() bool       { return w.Original == StarOp }
func (w Word) IsUnderscore() bool { return w.Original == UnderscoreOp }
func (w Word) IsWildcard() bool   { return w.IsStar() || w.IsUnderscore() }

func (w Word) IsVariable() bool {
	return varDeclRegex.MatchString(w.Original)
}

func (w Word) IsSymbol() bool {
	if w.IsWildcard() || utf8.RuneCountInString(w.Original) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(w.Original)
	return isPunct(r)
}

func (w Word) IsWord() bool {
	return !w.IsWildcard() && !w.IsSymbol() && !w.IsVariable()
}

// Kind returns the derived classification of w.
func (w Word) Kind() Kind {
	switch {
	case w.IsWildcard():
		return KindWildcard
	case w.IsVariable():
		return KindVariable
	case w.IsSymbol():
		return KindSymbol
	default:
		return KindWord
	}
}

// VariableName returns the lower-cased name of a variable declaration, or ""
// if w is not a variable.
func (w Word) VariableName() string {
	if !w.IsVariable() {
		return ""
	}
	return strings.ToLower(w.Original[1 : len(w.Original)-1])
}

// Key is the form used when comparing two words. It is the lemma when one is
// set and the normalized text otherwise.
func (w Word) Key() string {
	if w.Lemma != "" {
		return w.Lemma
	}
	return w.Normalized
}

// WordList is an ordered token sequence.
type WordList []Word

// Originals returns the original spelling of every word.
func (l WordList) Originals() []string {
	out := make([]string, len(l))
	for i, w := range l {
		out[i] = w.Original
	}
	return out
}

// Join returns the original spelling of the words separated by spaces.
func (l WordList) Join() string {
	return strings.Join(l.Originals(), " ")
}

// TrimTrailingSymbols drops symbol tokens at the end of the list.
func (l WordList) TrimTrailingSymbols() WordList {
	n := len(l)
	for n > 0 && l[n-1].IsSymbol() {
		n--
	}
	return l[:n]
}

// IsReserved reports whether a raw chunk must reach the matcher untouched.
func IsReserved(chunk string) bool {
	return chunk == StarOp || chunk == UnderscoreOp || varDeclRegex.MatchString(chunk)
}

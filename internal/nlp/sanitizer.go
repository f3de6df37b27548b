// internal/nlp/sanitizer.go

package nlp

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sanitizer turns raw text into a token sequence. Implementations must be
// total and deterministic: malformed input degrades to fewer tokens, never to
// an error or a panic.
type Sanitizer interface {
	Normalize(text string) WordList
}

// terminators are dropped when they appear as standalone chunks.
const terminators = ".,;:!?¡¿…"

// isPunct reports whether r splits off a word edge. Combining marks stay
// with the letter they decorate.
func isPunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsMark(r)
}

// IdentitySanitizer splits on whitespace and keeps everything else as typed.
// Punctuation glued to the edges of a word becomes separate symbol tokens.
type IdentitySanitizer struct{}

func (IdentitySanitizer) Normalize(text string) WordList {
	var out WordList
	for _, chunk := range strings.Fields(text) {
		if lead, core, trail, ok := splitReserved(chunk); ok {
			out = appendSymbols(out, lead)
			out = append(out, Word{Original: core, Normalized: core})
			out = appendSymbols(out, trail)
			continue
		}
		lead, core, trail := splitEdges(chunk)
		out = appendSymbols(out, lead)
		if core != "" {
			out = append(out, Word{Original: core, Normalized: core})
		}
		out = appendSymbols(out, trail)
	}
	return out
}

func appendSymbols(out WordList, s string) WordList {
	for _, r := range s {
		sym := string(r)
		out = append(out, Word{Original: sym, Normalized: sym})
	}
	return out
}

// splitEdges separates leading and trailing punctuation from chunk.
func splitEdges(chunk string) (lead, core, trail string) {
	start := 0
	for start < len(chunk) {
		r, size := utf8.DecodeRuneInString(chunk[start:])
		if !isPunct(r) {
			break
		}
		start += size
	}
	end := len(chunk)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(chunk[start:end])
		if !isPunct(r) {
			break
		}
		end -= size
	}
	return chunk[:start], chunk[start:end], chunk[end:]
}

// splitReserved detects reserved tokens wrapped in sentence punctuation, as
// in "[name]?" or "¿*".
func splitReserved(chunk string) (lead, core, trail string, ok bool) {
	core = strings.TrimRight(chunk, terminators)
	trail = chunk[len(core):]
	trimmed := strings.TrimLeft(core, terminators)
	lead = core[:len(core)-len(trimmed)]
	return lead, trimmed, trail, IsReserved(trimmed)
}

// foldPool holds transformer chains; a chain keeps state between calls and
// cannot be shared by goroutines.
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)), // accents
			norm.NFC,
			cases.Lower(language.Und),
		)
	},
}

// Fold lower-cases s and strips its diacritics. On transformer failure s is
// returned unchanged.
func Fold(s string) string {
	if s == "" {
		return s
	}
	t := foldPool.Get().(transform.Transformer)
	defer foldPool.Put(t)
	t.Reset()

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// DefaultSanitizer lower-cases, strips accents, collapses whitespace and
// trims punctuation so that "¿CUÁL es tu barrio???" and "cual es tu barrio"
// produce the same tokens.
type DefaultSanitizer struct{}

func (DefaultSanitizer) Normalize(text string) WordList {
	var out WordList
	for _, chunk := range strings.Fields(text) {
		if _, core, _, ok := splitReserved(chunk); ok {
			out = append(out, Word{Original: core, Normalized: Fold(core)})
			continue
		}
		_, core, _ := splitEdges(chunk)
		if core == "" {
			// standalone symbols survive unless they end a sentence
			if utf8.RuneCountInString(chunk) == 1 && !strings.Contains(terminators, chunk) {
				out = append(out, Word{Original: chunk, Normalized: chunk})
			}
			continue
		}
		out = append(out, Word{Original: core, Normalized: Fold(core)})
	}
	return out
}

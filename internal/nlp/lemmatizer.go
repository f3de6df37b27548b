// internal/nlp/lemmatizer.go

package nlp

// Lemmatizer maps a normalized word to its lemma. An empty result means the
// word has no known lemma.
type Lemmatizer interface {
	Lemmatize(w Word) string
}

// DictionaryLemmatizer looks lemmas up in a fixed table keyed by folded word.
type DictionaryLemmatizer map[string]string

// NewDictionaryLemmatizer folds both sides of the table so lookups agree with
// DefaultSanitizer output.
func NewDictionaryLemmatizer(table map[string]string) DictionaryLemmatizer {
	d := make(DictionaryLemmatizer, len(table))
	for word, lemma := range table {
		d[Fold(word)] = Fold(lemma)
	}
	return d
}

func (d DictionaryLemmatizer) Lemmatize(w Word) string {
	return d[Fold(w.Normalized)]
}

// LemmatizingSanitizer decorates another sanitizer and fills in lemmas for
// plain words. Since matching compares Word.Key, words sharing a lemma match
// each other.
type LemmatizingSanitizer struct {
	Base       Sanitizer
	Lemmatizer Lemmatizer
}

func (s LemmatizingSanitizer) Normalize(text string) WordList {
	words := s.Base.Normalize(text)
	for i, w := range words {
		if !w.IsWord() {
			continue
		}
		if lemma := s.Lemmatizer.Lemmatize(w); lemma != "" {
			words[i].Lemma = lemma
		}
	}
	return words
}

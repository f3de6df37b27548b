package preprocessor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"rgehrsitz/botmaster/internal/preprocessor/pattern"
	"rgehrsitz/botmaster/internal/rules"
)

// KeywordOp marks an input as "this word anywhere in the sentence".
const KeywordOp = "**"

// IsKeywordInput reports whether raw ends with the keyword operator.
func IsKeywordInput(raw string) bool {
	fields := strings.Fields(raw)
	return len(fields) > 1 && fields[len(fields)-1] == KeywordOp
}

// ExpandInput rewrites a keyword input into the plain patterns it stands for:
// "cars **" becomes "cars", "_ cars", "cars _" and "_ cars *". Trailing
// punctuation of the keyword is dropped, so "cars? **" expands the same way.
// Other inputs are returned as they are.
func ExpandInput(raw string) []string {
	if !IsKeywordInput(raw) {
		return []string{raw}
	}
	fields := strings.Fields(raw)
	kw := strings.Join(fields[:len(fields)-1], " ")
	if trimmed := strings.TrimRightFunc(kw, unicode.IsPunct); trimmed != "" {
		kw = trimmed
	}
	return []string{
		kw,
		"_ " + kw,
		kw + " _",
		"_ " + kw + " *",
	}
}

// dedupePatterns drops alternatives that match exactly what an earlier
// alternative of the same rule matches. The earlier one would win every tie,
// so dropping the later one does not change any result.
func dedupePatterns(patterns []pattern.Pattern) []pattern.Pattern {
	seen := make(map[string]bool, len(patterns))
	out := patterns[:0]
	for _, p := range patterns {
		key := p.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// RuleKey generates a key shared by rules with the same inputs and outputs,
// regardless of their order.
func RuleKey(r *rules.Rule) (string, error) {
	normalized := struct {
		Inputs  []string `json:"inputs"`
		Outputs []string `json:"outputs"`
	}{
		Inputs:  sortedTrimmed(r.Inputs),
		Outputs: sortedTrimmed(r.Outputs),
	}

	serialized, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("error marshaling rule: %w", err)
	}

	hash := sha256.Sum256(serialized)
	return fmt.Sprintf("%x", hash), nil
}

func sortedTrimmed(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	sort.Strings(out)
	return out
}

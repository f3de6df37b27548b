package coverage

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Report renders analyzed scripts for terminals.
type Report struct {
	Scripts []AnalyzedScript
	Verbose bool // list every line, not only uncovered ones
}

func percent(f float64) string {
	return humanize.FtoaWithDigits(f, 1) + "%"
}

func (r Report) String() string {
	var b strings.Builder
	for _, s := range r.Scripts {
		fmt.Fprintf(&b, "%s: %s (%s of %s lines)\n",
			s.Filename, percent(s.Coverage()),
			humanize.Comma(int64(s.CoveredLines())), humanize.Comma(int64(len(s.Lines))))
		for i, l := range s.Lines {
			switch {
			case l.Covered() && r.Verbose:
				fmt.Fprintf(&b, "  %d. OK   %q -> rule %d, input %d\n", i+1, l.Question, l.RuleID, l.InputIdx)
			case !l.Covered():
				fmt.Fprintf(&b, "  %d. FAIL %q", i+1, l.Question)
				if l.Hint != "" {
					fmt.Fprintf(&b, " (closest input: %q)", l.Hint)
				}
				b.WriteString("\n")
			}
		}
	}
	fmt.Fprintf(&b, "Global coverage: %s\n", percent(Global(r.Scripts)))
	return b.String()
}

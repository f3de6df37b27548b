package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"rgehrsitz/botmaster/internal/runtime"

	"github.com/spf13/cobra"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask <rules> <question...>",
	Short: "Answer a single question and show which rule answered",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, _, err := loadEngine(args[0])
	if err != nil {
		return err
	}
	question := strings.Join(args[1:], " ")
	reply := runtime.NewChatbot(engine).Respond(question, target)

	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Question string                `json:"question"`
			Answer   string                `json:"answer"`
			Matches  []runtime.MatchResult `json:"matches"`
			Evasive  bool                  `json:"evasive,omitempty"`
		}{question, reply.Text, reply.Matches, reply.Evasive})
	}

	fmt.Fprintln(out, reply.Text)
	for _, m := range reply.Matches {
		fmt.Fprintf(out, "(rule %d, input %d)\n", m.RuleID, m.InputIdx)
	}
	return nil
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the answer as JSON")
}

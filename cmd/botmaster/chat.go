package main

import (
	"bufio"
	"fmt"
	"strings"

	"rgehrsitz/botmaster/internal/runtime"

	"github.com/spf13/cobra"
)

const chatPrompt = "> "

var chatCmd = &cobra.Command{
	Use:   "chat <rules>",
	Short: "Talk to the bot on the terminal",
	Long: `Reads one question per line and prints the answer. Type /history to
show the conversation, /clear to forget it and /quit to leave.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	engine, _, err := loadEngine(args[0])
	if err != nil {
		return err
	}
	bot := runtime.NewChatbot(engine)

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	for {
		fmt.Fprint(out, chatPrompt)
		if !in.Scan() {
			fmt.Fprintln(out)
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/clear":
			bot.ClearHistory()
			continue
		case "/history":
			for _, ex := range bot.History() {
				fmt.Fprintf(out, "[%s] %s\n  %s\n", ex.Time.Format("15:04:05"), ex.Input, ex.Reply.Text)
			}
			continue
		}
		fmt.Fprintln(out, bot.Respond(line, target).Text)
	}
}

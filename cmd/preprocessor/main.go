package main

import (
	"fmt"
	"os"

	"rgehrsitz/botmaster/internal/config"
	"rgehrsitz/botmaster/internal/preprocessor"
	"rgehrsitz/botmaster/internal/score"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	showPatterns bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "preprocessor",
	Short: "Check botmaster rule files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return cfg.SetupLogging(cmd.ErrOrStderr())
	},
	SilenceUsage: true,
}

var checkCmd = &cobra.Command{
	Use:   "check <rules>",
	Short: "Parse, validate and compile a rule file",
	Long: `Parses a JSON or YAML rule file, reports every validation problem,
compiles the rules with the configured sanitizer and prints a summary
with the authoring score.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	tree, err := preprocessor.LoadRules(args[0])
	if err != nil {
		return err
	}
	sanitizer, err := cfg.NewSanitizer()
	if err != nil {
		return err
	}

	compiled := preprocessor.CompileRules(tree, sanitizer)
	patterns := 0
	for _, r := range compiled {
		patterns += len(r.Patterns)
	}
	log.Debug().Int("rules", len(compiled)).Int("patterns", patterns).Msg("Compiled rules")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "OK: %s\n", args[0])
	fmt.Fprintf(out, "rules:    %s\n", humanize.Comma(int64(len(compiled))))
	fmt.Fprintf(out, "patterns: %s\n", humanize.Comma(int64(patterns)))

	s := score.Rules(tree)
	fmt.Fprintf(out, "score:    %s (conditional %d, variable %d, wildcard %d, keyword %d, simple %d)\n",
		humanize.Comma(int64(s.Total)), s.Conditionals, s.Variables, s.Wildcards, s.KeywordOps, s.Simple)

	if showPatterns {
		for _, r := range compiled {
			for _, p := range r.Patterns {
				fmt.Fprintf(out, "%d[%d] %q => %s\n", r.ID, p.InputIdx, p.Source, p)
			}
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML)")
	checkCmd.Flags().BoolVar(&showPatterns, "patterns", false, "Print every compiled pattern")

	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"rgehrsitz/botmaster/internal/config"
	"rgehrsitz/botmaster/internal/preprocessor"
	"rgehrsitz/botmaster/internal/rules"
	"rgehrsitz/botmaster/internal/runtime"

	"github.com/spf13/cobra"
)

var (
	configPath string
	target     string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "botmaster",
	Short: "Rule based chatbot",
	Long: `botmaster answers questions with hand written rules: input patterns with
wildcards and variables mapped to one or more output templates.`,
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

// loadEngine reads the rule file and installs it in a configured engine.
func loadEngine(path string) (*runtime.Engine, *rules.Tree, error) {
	tree, err := preprocessor.LoadRules(path)
	if err != nil {
		return nil, nil, err
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return nil, nil, err
	}
	engine.SetRules(tree)
	return engine, tree, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&target, "target", "t", "", "User the questions are asked as")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(coverageCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

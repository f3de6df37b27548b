package main

import (
	"fmt"

	"rgehrsitz/botmaster/internal/coverage"

	"github.com/spf13/cobra"
)

var coverageVerbose bool

var coverageCmd = &cobra.Command{
	Use:   "coverage <rules> <script...>",
	Short: "Replay conversation scripts and report which lines the rules answer",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCoverage,
}

func runCoverage(cmd *cobra.Command, args []string) error {
	engine, tree, err := loadEngine(args[0])
	if err != nil {
		return err
	}

	scripts := make([]coverage.Script, 0, len(args)-1)
	for _, path := range args[1:] {
		s, err := coverage.LoadScript(path)
		if err != nil {
			return err
		}
		if s.Target == "" {
			s.Target = target
		}
		scripts = append(scripts, s)
	}

	report := coverage.Report{Scripts: coverage.Analyze(engine, tree, scripts), Verbose: coverageVerbose}
	fmt.Fprint(cmd.OutOrStdout(), report)
	return nil
}

func init() {
	coverageCmd.Flags().BoolVarP(&coverageVerbose, "verbose", "v", false, "List covered lines too")
}

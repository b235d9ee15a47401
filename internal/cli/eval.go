package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/formsense/formsense"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvalCommand() *cobra.Command {
	var dataFolder string
	var rulesPath string
	var lang string

	cmd := &cobra.Command{
		Use:     "eval",
		Short:   "Evaluate classification accuracy against an annotated corpus",
		Example: `  formsense eval --data-folder data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cl := formsense.New()
			if rulesPath != "" {
				if err := cl.LoadRules(rulesPath); err != nil {
					return err
				}
			}

			slog.Info("Evaluating", "data-folder", dataFolder, "rule-version", cl.RuleVersion())
			start := time.Now()
			result, err := cl.Evaluate(dataFolder, &formsense.EvalConfig{
				Lang:    lang,
				Verbose: c.verbose,
			})
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			if result.FieldTotal == 0 {
				fmt.Println("No annotated fields found.")
				return nil
			}

			fmt.Printf("Field type accuracy: %.1f%% (%d/%d fields)\n",
				result.FieldAccuracy*100, result.FieldCorrect, result.FieldTotal)
			fmt.Printf("Sequence accuracy: %.1f%% (%d/%d forms)\n",
				result.SequenceAccuracy*100, result.SequenceCorrect, result.SequenceTotal)

			fmt.Println("\nPer type:")
			for _, tp := range result.Types() {
				total := result.TypeTotal[tp]
				correct := result.TypeCorrect[tp]
				fmt.Printf("  %-8s %5.1f%% (%d/%d)\n", tp, pct(correct, total), correct, total)
			}

			fmt.Println("\nPer domain:")
			for _, d := range result.Domains() {
				total := result.DomainTotal[d]
				correct := result.DomainCorrect[d]
				fmt.Printf("  %-20s %5.1f%% (%d/%d)\n", d, pct(correct, total), correct, total)
			}

			if c.verbose && len(result.Mismatches) > 0 {
				fmt.Println("\nMismatches:")
				for _, m := range result.Mismatches {
					fmt.Printf("  %s field=%q want=%s got=%s\n", m.URL, m.FieldName, m.Want, orNone(m.Got))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFolder, "data-folder", "data", "Path to annotated corpus folder")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Path to a rules file (default: embedded rule set)")
	cmd.Flags().StringVar(&lang, "lang", "", "Override the per-page language recorded in the corpus")
	return cmd
}

func pct(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

package cli

import (
	"fmt"
	"sort"

	"github.com/formsense/formsense/pattern"
	"github.com/spf13/cobra"
)

func (c *CLI) newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate pattern rule sets",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var inspectPath string
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the version, types and languages of a rule set",
		Example: `  formsense rules inspect
  formsense rules inspect --rules rules-v2.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, version, err := loadRules(inspectPath)
			if err != nil {
				return err
			}

			fmt.Printf("Version: %d\n", version)
			types := make([]string, 0, len(rules))
			for tp := range rules {
				types = append(types, tp)
			}
			sort.Strings(types)

			total := 0
			for _, tp := range types {
				langs := make([]string, 0, len(rules[tp]))
				count := 0
				for lang, pats := range rules[tp] {
					if lang == "" {
						lang = "(any)"
					}
					langs = append(langs, lang)
					count += len(pats)
				}
				sort.Strings(langs)
				total += count
				fmt.Printf("  %-28s %2d patterns  %v\n", tp, count, langs)
			}
			fmt.Printf("Total: %d types, %d patterns\n", len(types), total)
			return nil
		},
	}
	inspectCmd.Flags().StringVar(&inspectPath, "rules", "", "Path to a rules file (default: embedded rule set)")

	checkCmd := &cobra.Command{
		Use:     "check <rules-file>",
		Short:   "Validate a rule set file (JSON structure and regex syntax)",
		Args:    cobra.ExactArgs(1),
		Example: `  formsense rules check rules-v2.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, version, err := pattern.LoadRuleFile(args[0])
			if err != nil {
				return err
			}
			count := 0
			for _, byLang := range rules {
				for _, pats := range byLang {
					count += len(pats)
				}
			}
			fmt.Printf("OK: version %d, %d types, %d patterns\n", version, len(rules), count)
			return nil
		},
	}

	rulesCmd.AddCommand(inspectCmd, checkCmd)
	return rulesCmd
}

func loadRules(path string) (pattern.RuleSet, int, error) {
	if path == "" {
		rules, version := pattern.DefaultRuleSet()
		return rules, version, nil
	}
	return pattern.LoadRuleFile(path)
}

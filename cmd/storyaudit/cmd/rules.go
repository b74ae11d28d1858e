package cmd

import (
	"github.com/spf13/cobra"
)

var rulesTOML bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the rule set in effect",
	Long: `Print the validation rules in effect: the built-in rules, overlaid
with the file given by --rules. The output is itself a valid rule file,
YAML by default or TOML with --toml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		marshal := ruleSet.Marshal
		if rulesTOML {
			marshal = ruleSet.MarshalTOML
		}
		data, err := marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesTOML, "toml", false, "print the rules as TOML")
	rootCmd.AddCommand(rulesCmd)
}

package regexscan

import (
	"context"

	"github.com/regexscan/regexscan/internal/report"
	"github.com/spf13/cobra"
)

func newRulesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rule files that load from the rules directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			rs, err := loadRules(ctx, s)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if s.format == formatJSON {
				return report.WriteJSON(out, report.Run{Rules: rs}, report.PrintOptions{})
			}
			return report.PrintRuleFiles(out, rs)
		},
	}
}

package regexscan

import (
	"fmt"

	"github.com/regexscan/regexscan/internal/pattern"
	"github.com/spf13/cobra"
)

func newTestRuleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "test-rule <regex> <token>",
		Short: "Compile a single regex and match it against a token",
		Long: "test-rule compiles <regex> with the configured syntax and reports whether it matches <token>. " +
			"The exit code is 0 on a match and 1 otherwise, so rule authors can script checks.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			p, err := pattern.Compile(s.syntax, args[0])
			if err != nil {
				return fail("invalid %s regex: %v", s.syntax, err)
			}
			out := cmd.OutOrStdout()
			if !p.Match(args[1]) {
				fmt.Fprintln(out, "no match")
				return &ExitError{Code: ExitFailure}
			}
			fmt.Fprintln(out, "match")
			return nil
		},
	}
}

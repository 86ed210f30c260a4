package regexscan

import "github.com/spf13/cobra"

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fail("unsupported shell: %s", args[0])
			}
		},
		Example: `
# Bash
regexscan completion bash > /etc/bash_completion.d/regexscan

# Zsh
regexscan completion zsh > "${fpath[1]}/_regexscan"

# Fish
regexscan completion fish > ~/.config/fish/completions/regexscan.fish

# PowerShell
regexscan completion powershell > $PROFILE\regexscan.ps1
`,
	}
}


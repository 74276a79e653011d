package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tekdi/tekdi-cursor-rules/internal/version"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
)

var (
	verbosity int
	dryRun    bool

	// Flag overrides shared by the commands that resolve an environment.
	flagSource string
	flagRef    string
	flagTarget string

	rootCmd = &cobra.Command{
		Use:   "cursor-rules",
		Short: MsgRootShort,
		Long: `cursor-rules installs AI coding assistant rule documents from a rules
repository into your project. It layers common, project-type, language,
and framework rules in a fixed order, and backs up anything it would
overwrite into a timestamped folder.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(uninstallCmd)
}

// addEnvFlags registers the source/target flags on commands that
// resolve a rules environment.
func addEnvFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSource, "source", "", "Rules repository URL or local directory")
	cmd.Flags().StringVar(&flagRef, "ref", "", "Branch or tag of the rules repository")
	cmd.Flags().StringVar(&flagTarget, "target", "", "Rules directory inside the project (default .cursor/rules)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: MsgVersionShort,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cursor-rules version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: MsgCompletionShort,
	Long: `To load completions:

Bash:
  $ source <(cursor-rules completion bash)

Zsh:
  $ cursor-rules completion zsh > "${fpath[1]}/_cursor-rules"

Fish:
  $ cursor-rules completion fish | source

PowerShell:
  PS> cursor-rules completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tekdi/tekdi-cursor-rules/pkg/commands"
	"github.com/tekdi/tekdi-cursor-rules/pkg/display"
	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/prompt"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

var (
	flagType      string
	flagLanguage  string
	flagFramework string
	flagForce     bool
	flagKeepMod   bool
)

func prepare() (*commands.Environment, error) {
	return commands.Prepare(commands.PrepareOptions{
		SourceURL: flagSource,
		SourceRef: flagRef,
		TargetDir: flagTarget,
	})
}

func flagSelection() types.Selection {
	return types.Selection{
		Type:      flagType,
		Language:  flagLanguage,
		Framework: flagFramework,
	}
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: MsgInstallShort,
	Long: `Install copies rule documents into the project's rules directory in a
fixed order: common rules, project-type rules, language rules, then
framework rules. Files that would be overwritten are first moved into a
timestamped backup folder.

Without --type/--language the selection is collected interactively.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := prepare()
		if err != nil {
			return err
		}

		sel := env.MergeSelection(flagSelection())
		if !sel.Complete() {
			if !prompt.IsInteractive() {
				return errors.New(errors.ErrSelectionInvalid, "not a terminal: pass --type and --language")
			}
			sel, err = prompt.Select(env.Catalog, sel)
			if err != nil {
				return err
			}
		}

		result, err := commands.Install(env, commands.InstallOptions{
			Selection: sel,
			DryRun:    dryRun,
			Force:     flagForce,
		})
		if err != nil {
			return err
		}
		fmt.Print(display.RenderInstallResult(result))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: MsgListShort,
	Long:  MsgListLong,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := prepare()
		if err != nil {
			return err
		}
		result, err := commands.List(env, commands.ListOptions{Selection: flagSelection()})
		if err != nil {
			return err
		}
		fmt.Print(display.RenderListResult(result))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: MsgStatusShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := prepare()
		if err != nil {
			return err
		}
		report, err := commands.Status(env)
		if err != nil {
			return err
		}
		fmt.Print(display.RenderStatusReport(report))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <rule>",
	Short: MsgShowShort,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := prepare()
		if err != nil {
			return err
		}
		result, err := commands.Show(env, commands.ShowOptions{Rule: args[0]})
		if err != nil {
			return err
		}
		if result.Rule.Meta.Description != "" {
			fmt.Printf("%s\n\n", result.Rule.Meta.Description)
		}
		fmt.Print(display.NewMarkdownRenderer().Render(result.Body))
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: MsgUpdateShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := prepare()
		if err != nil {
			return err
		}
		result, err := commands.Update(env)
		if err != nil {
			return err
		}
		if result.Local {
			fmt.Printf("Local rules directory %s is always current.\n", result.Dir)
			return nil
		}
		fmt.Printf("Rules repository updated to %s\n", result.Revision)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: MsgInitShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.Init(commands.InitOptions{Force: flagForce})
		if err != nil {
			return err
		}
		if !result.Created {
			fmt.Printf(MsgConfigExists, result.Path)
			return nil
		}
		fmt.Printf(MsgConfigCreated, result.Path)
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: MsgUninstallShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := prepare()
		if err != nil {
			return err
		}
		result, err := commands.Uninstall(env, commands.UninstallOptions{
			KeepModified: flagKeepMod,
			DryRun:       dryRun,
		})
		if err != nil {
			return err
		}
		fmt.Print(display.RenderUninstallResult(result))
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{installCmd, listCmd, statusCmd, showCmd, updateCmd, uninstallCmd} {
		addEnvFlags(cmd)
	}
	for _, cmd := range []*cobra.Command{installCmd, listCmd} {
		cmd.Flags().StringVar(&flagType, "type", "", "Project type (backend, frontend, mobile-app)")
		cmd.Flags().StringVar(&flagLanguage, "language", "", "Project language")
		cmd.Flags().StringVar(&flagFramework, "framework", "", "Optional framework subset")
	}
	installCmd.Flags().BoolVar(&flagForce, "force", false, "Copy files even when their content is unchanged")
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")
	uninstallCmd.Flags().BoolVar(&flagKeepMod, "keep-modified", false, "Keep files you have edited since install")
}

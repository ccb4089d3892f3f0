package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/project"
	"github.com/quillhq/quill/internal/registry"
)

var removeCmd = &cobra.Command{
	Use:     "remove <slug>",
	Aliases: []string{"rm"},
	Short:   "Remove a skill from the project",
	Long: `Drop the skill from quill.yaml, delete its materialized directory,
prune its lockfile entry, and regenerate the discovery index — all in one
step. The registry keeps the skill's content.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	slug := args[0]
	if err := registry.ValidateSlug(slug); err != nil {
		return err
	}

	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	declared := cfg.RemoveSkill(slug)
	if declared {
		if err := project.SaveConfig(root, cfg); err != nil {
			return err
		}
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	installed, err := newSyncer(reg, root, cfg).Remove(slug)
	if err != nil {
		return err
	}

	switch {
	case declared || installed:
		printOK(slug, "removed from project")
	default:
		printMiss(slug, "was not declared or installed")
	}
	return nil
}

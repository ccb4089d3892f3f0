package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/project"
	"github.com/quillhq/quill/internal/registry"
	"github.com/quillhq/quill/internal/syncer"
)

var (
	flagAddVersion string
	flagAddSource  string
	flagAddNoSync  bool
)

var addCmd = &cobra.Command{
	Use:   "add <slug>",
	Short: "Declare a skill in quill.yaml and sync it",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddVersion, "version", "", "Semver constraint, e.g. ^1.0.0 or an exact version")
	addCmd.Flags().StringVar(&flagAddSource, "source", "", "Remote source to fall back to when the skill is not cached")
	addCmd.Flags().BoolVar(&flagAddNoSync, "no-sync", false, "Only update quill.yaml, do not materialize")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	slug := args[0]
	if err := registry.ValidateSlug(slug); err != nil {
		return err
	}

	root, cfg, err := loadProject()
	if err != nil {
		return err
	}
	if err := cfg.AddSkill(project.SkillEntry{
		Slug:    slug,
		Version: flagAddVersion,
		Source:  flagAddSource,
	}); err != nil {
		return err
	}
	if err := project.SaveConfig(root, cfg); err != nil {
		return err
	}
	printOK(slug, "declared in quill.yaml")

	if flagAddNoSync {
		printInfo("", "run 'quill sync' to materialize")
		return nil
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	res, err := newSyncer(reg, root, cfg).Sync(cfg.Skills, syncer.Options{})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return printSyncResult(res)
}

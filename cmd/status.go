package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/project"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show desired vs locked vs materialized state per skill",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}
	lock, err := project.LoadLockfile(root)
	if err != nil {
		return err
	}
	installDir := cfg.InstallPath(root)

	printSection("quill status")

	var inSync, pending, missingFiles, orphaned []string

	for _, e := range cfg.Skills {
		ls := lock.Find(e.Slug)
		materialized := project.IsMaterialized(filepath.Join(installDir, e.Slug))
		switch {
		case ls == nil:
			pending = append(pending, fmt.Sprintf("  -  [%s] declared but never synced  (run: quill sync)", e.Slug))
		case !materialized:
			missingFiles = append(missingFiles, fmt.Sprintf("  ✗  [%s] locked at %s but files are missing  (run: quill sync)", e.Slug, lockLabel(ls)))
		default:
			inSync = append(inSync, fmt.Sprintf("  ✓  [%s] %s", e.Slug, lockLabel(ls)))
		}
	}

	// Lock entries whose declaration is gone should not exist: remove prunes
	// them in the same step. Surface any that slipped through.
	for _, ls := range lock.Skills {
		if cfg.FindSkill(ls.Slug) == nil {
			orphaned = append(orphaned, fmt.Sprintf("  ⚠  [%s] locked but no longer declared  (run: quill remove %s)", ls.Slug, ls.Slug))
		}
	}

	groups := []struct {
		title string
		lines []string
	}{
		{"In sync:", inSync},
		{"Not yet synced:", pending},
		{"Missing files:", missingFiles},
		{"Stale lock entries:", orphaned},
	}
	printed := false
	for _, g := range groups {
		if len(g.lines) == 0 {
			continue
		}
		printBullet(g.title)
		for _, ln := range g.lines {
			fmt.Println(ln)
		}
		printed = true
	}
	if !printed {
		printSkip("", "no skills declared in quill.yaml")
	}
	return nil
}

func lockLabel(ls *project.LockedSkill) string {
	if ls.ResolvedVersion != "" {
		return fmt.Sprintf("%s (%s)", ls.ResolvedVersion, shortHash(ls.ContentHash))
	}
	return shortHash(ls.ContentHash)
}

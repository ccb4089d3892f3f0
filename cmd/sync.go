package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/syncer"
)

var flagSyncForce bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Materialize the declared skills into the project",
	Long: `Resolve every skill declared in quill.yaml against the registry,
write changed skills into the install directory, and rewrite the lockfile
and the discovery index.

Skills already at their locked version are left untouched. Failures are
reported per skill and never abort the rest of the batch; the exit code is
non-zero when any skill failed.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&flagSyncForce, "force", false, "Reinstall every skill, re-resolving constraints")
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}
	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}

	printSection("quill sync")
	if len(cfg.Skills) == 0 {
		printSkip("", "no skills declared in quill.yaml")
		return nil
	}

	res, err := newSyncer(reg, root, cfg).Sync(cfg.Skills, syncer.Options{Force: flagSyncForce})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return printSyncResult(res)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/internal/project"
	"github.com/quillhq/quill/internal/registry"
	"github.com/quillhq/quill/internal/remote"
	"github.com/quillhq/quill/internal/syncer"
)

var rootCmd = &cobra.Command{
	Use:          "quill",
	Short:        "Quill — local-first skill registry and sync for AI agents",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Quill stores reusable instruction documents ("skills") in a local
content-addressed registry and materializes a declared set of them into a
project directory, keeping a lockfile and a discovery index up to date.`,
}

var flagRegistry string

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRegistry, "registry", "",
		"Registry root (default $XDG_DATA_HOME/quill/registry)")
}

// Execute is called by main.go.
func Execute() {
	logging.Initialize()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadProject reads quill.yaml from the current working directory.
func loadProject() (string, *project.Config, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("cannot determine working directory: %w", err)
	}
	cfg, err := project.LoadConfig(root)
	if err != nil {
		return "", nil, fmt.Errorf("cannot load %s: %w\nRun 'quill init' first.", project.ConfigFileName, err)
	}
	return root, cfg, nil
}

// registryRoot resolves the registry location: --registry flag, then the
// project config (which already honors QUILL_REGISTRY), then the
// environment, then the XDG default.
func registryRoot(cfg *project.Config) string {
	switch {
	case flagRegistry != "":
		return flagRegistry
	case cfg != nil && cfg.Registry != "":
		return cfg.Registry
	case os.Getenv("QUILL_REGISTRY") != "":
		return os.Getenv("QUILL_REGISTRY")
	default:
		return registry.DefaultRoot()
	}
}

// openRegistry opens (creating if needed) the resolved registry.
func openRegistry(cfg *project.Config) (*registry.Registry, error) {
	return registry.Open(registryRoot(cfg))
}

// newSyncer builds the reconciliation engine for a loaded project. No remote
// source implementation ships with the CLI; src stays nil unless wired by an
// embedding tool.
func newSyncer(reg *registry.Registry, root string, cfg *project.Config) *syncer.Syncer {
	var src remote.Source
	return syncer.New(reg, root, cfg.InstallPath(root), src)
}

// printSyncResult prints the per-skill failures and the final counts, and
// returns a non-nil error when any skill failed so calling scripts see a
// non-zero exit.
func printSyncResult(res *syncer.Result) error {
	for _, se := range res.Errors {
		printErr(se.Slug, fmt.Sprintf("%s — %v", se.Reason, se.Err))
	}
	printOK("", fmt.Sprintf("%d updated, %d unchanged, %d failed",
		res.Updated, res.Unchanged, len(res.Errors)))
	if res.Failed() {
		return fmt.Errorf("%d skill(s) could not be synced", len(res.Errors))
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Bulk-publish existing skill directories into the registry",
	Long: `Scan <dir> for subdirectories containing a SKILL.md and publish each
one under its directory name. Skills whose content already matches the
registry are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	reg, err := openRegistry(nil)
	if err != nil {
		return err
	}

	printSection("quill import")
	res, err := importer.ImportDir(reg, args[0])
	if err != nil {
		return err
	}

	for _, f := range res.Failures {
		printErr(f.Slug, f.Err.Error())
	}
	printOK("", fmt.Sprintf("%d imported, %d skipped, %d failed",
		res.Imported, res.Skipped, len(res.Failures)))
	if len(res.Failures) > 0 {
		return fmt.Errorf("%d skill(s) could not be imported", len(res.Failures))
	}
	return nil
}

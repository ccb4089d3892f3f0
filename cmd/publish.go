package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/registry"
)

var (
	flagPublishFile      string
	flagPublishVersion   string
	flagPublishChangelog string
	flagPublishBy        string
)

var publishCmd = &cobra.Command{
	Use:   "publish <slug>",
	Short: "Publish a SKILL.md into the registry",
	Long: `Store the file's content in the object store and move the skill's
current pointer to it. With --version, a ledger entry is recorded as well so
projects can pin or constrain the version.

Name, description, tags, and compat are read from the SKILL.md frontmatter.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&flagPublishFile, "file", "SKILL.md", "Path to the skill document")
	publishCmd.Flags().StringVar(&flagPublishVersion, "version", "", "Semantic version to record in the ledger")
	publishCmd.Flags().StringVar(&flagPublishChangelog, "changelog", "", "Changelog note for the ledger entry")
	publishCmd.Flags().StringVar(&flagPublishBy, "by", "", "Publisher recorded in the entry's provenance")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(_ *cobra.Command, args []string) error {
	slug := args[0]
	content, err := os.ReadFile(flagPublishFile)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", flagPublishFile, err)
	}

	reg, err := openRegistry(nil)
	if err != nil {
		return err
	}
	meta, err := reg.Publish(slug, content, registry.PublishOptions{
		Version:     flagPublishVersion,
		Changelog:   flagPublishChangelog,
		PublishedBy: flagPublishBy,
	})
	if err != nil {
		return err
	}

	printSection("quill publish")
	printOK(slug, fmt.Sprintf("published %q", meta.Name))
	printInfo("", fmt.Sprintf("content hash %s", meta.ContentHash))
	if flagPublishVersion != "" {
		printInfo("", fmt.Sprintf("ledger entry %s recorded", flagPublishVersion))
	}
	return nil
}

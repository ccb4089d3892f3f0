package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a skill's metadata and version history",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	slug := args[0]
	reg, err := openRegistry(nil)
	if err != nil {
		return err
	}
	meta, err := reg.LoadMetadata(slug)
	if err != nil {
		return err
	}

	printSection(fmt.Sprintf("%s — %s", meta.Slug, meta.Name))
	if meta.Description != "" {
		printInfo("", meta.Description)
	}
	if len(meta.Tags) > 0 {
		printInfo("", "tags: "+strings.Join(meta.Tags, ", "))
	}
	if len(meta.Compat) > 0 {
		printInfo("", "compat: "+strings.Join(meta.Compat, ", "))
	}
	printInfo("", fmt.Sprintf("current: %s (updated %s)", shortHash(meta.ContentHash), meta.UpdatedAt.Format("2006-01-02 15:04")))

	entries, err := reg.LoadLedger(slug)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printSkip("", "no version ledger (single-copy skill)")
		return nil
	}

	printBullet("Versions:")
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %s", e.Version, shortHash(e.Hash), e.Provenance.Kind)
		if e.Provenance.PublishedBy != "" {
			line += " by " + e.Provenance.PublishedBy
		}
		if e.Changelog != "" {
			line += " — " + e.Changelog
		}
		printInfo("", line)
	}
	return nil
}

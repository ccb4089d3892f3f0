package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/search"
)

var flagSearchK int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search registry skills by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchK, "k", 10, "Number of results to show")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	reg, err := openRegistry(nil)
	if err != nil {
		return err
	}
	docs, err := search.FromRegistry(reg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results := search.KeywordSearch(docs, query, flagSearchK)
	if len(results) == 0 {
		printMiss("", fmt.Sprintf("no skills match %q", query))
		return nil
	}

	printSection(fmt.Sprintf("quill search %q", query))
	for _, r := range results {
		printOK(r.Skill.Slug, truncate(r.Skill.Description, 70))
	}
	return nil
}

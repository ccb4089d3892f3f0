package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/project"
)

var flagListInstalled bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry skills, or installed skills with --installed",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListInstalled, "installed", false, "List the project's locked skills instead of the registry")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	if flagListInstalled {
		return listInstalled()
	}
	return listRegistry()
}

func listRegistry() error {
	reg, err := openRegistry(nil)
	if err != nil {
		return err
	}
	slugs, err := reg.ListSkills()
	if err != nil {
		return err
	}
	if len(slugs) == 0 {
		printMiss("", "registry is empty — publish something with 'quill publish'")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tVERSIONS\tDESCRIPTION")
	for _, slug := range slugs {
		meta, err := reg.LoadMetadata(slug)
		if err != nil {
			printErr(slug, fmt.Sprintf("unreadable metadata: %v", err))
			continue
		}
		versions, err := reg.CachedVersions(slug)
		if err != nil {
			printErr(slug, fmt.Sprintf("unreadable ledger: %v", err))
			continue
		}
		vcol := "-"
		if n := len(versions); n > 0 {
			vcol = fmt.Sprintf("%d (latest %s)", n, versions[0])
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", slug, meta.Name, vcol, truncate(meta.Description, 60))
	}
	return w.Flush()
}

func listInstalled() error {
	root, _, err := loadProject()
	if err != nil {
		return err
	}
	lock, err := project.LoadLockfile(root)
	if err != nil {
		return err
	}
	if len(lock.Skills) == 0 {
		printMiss("", "nothing installed — run 'quill sync'")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tVERSION\tHASH")
	for _, ls := range lock.Skills {
		v := ls.ResolvedVersion
		if v == "" {
			v = "(current)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ls.Slug, v, shortHash(ls.ContentHash))
	}
	return w.Flush()
}

// truncate shortens s to max runes. Counting runes, not bytes, so a
// multibyte description is never cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

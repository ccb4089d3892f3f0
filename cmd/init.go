package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a project for quill-managed skills",
	Long: `Write a default quill.yaml into the current directory and make sure
the registry exists. Declare skills with 'quill add' afterwards.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	cfgPath := filepath.Join(root, project.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		printSkip("", fmt.Sprintf("%s already exists — leaving it untouched", project.ConfigFileName))
	} else {
		if err := project.SaveConfig(root, project.DefaultConfig()); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("wrote %s", project.ConfigFileName))
	}

	reg, err := openRegistry(nil)
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("registry ready: %s", reg.Root()))
	printInfo("", "declare skills with 'quill add <slug>' and run 'quill sync'")
	return nil
}

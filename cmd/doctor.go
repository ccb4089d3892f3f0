package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/project"
)

// tempFileMaxAge is how old an orphaned temp file must be before doctor fix
// removes it. Younger files may belong to an in-flight write.
const tempFileMaxAge = time.Hour

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the registry and project for problems",
	Long: `Verify every stored object against its content hash, report orphaned
temp files, and check the project configuration. Corrupted objects are
reported for manual remediation, never repaired automatically.

Run 'quill doctor fix' to delete orphaned temp files.`,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Remove orphaned temp files from the registry",
	RunE:  runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("quill doctor")

	// ── Check 1: registry reachable ───────────────────────────────────────────
	fmt.Println("\n[ registry ]")
	reg, err := openRegistry(nil)
	if err != nil {
		failD("cannot open registry: %v", err)
		return fmt.Errorf("doctor found problems")
	}
	printOK("", fmt.Sprintf("registry root: %s", reg.Root()))

	// ── Check 2: object integrity ─────────────────────────────────────────────
	fmt.Println("\n[ objects ]")
	hashes, err := reg.ListObjects()
	if err != nil {
		failD("cannot list objects: %v", err)
	} else {
		corrupted, err := reg.VerifyObjects()
		switch {
		case err != nil:
			failD("verification failed: %v", err)
		case len(corrupted) > 0:
			for _, h := range corrupted {
				failD("object %s is corrupted — restore it from a backup or republish, then delete the bad object", h)
			}
		default:
			printOK("", fmt.Sprintf("%d object(s) verified", len(hashes)))
		}
	}

	// ── Check 3: project config, when present ─────────────────────────────────
	fmt.Println("\n[ project ]")
	root, err := os.Getwd()
	if err != nil {
		failD("cannot determine working directory: %v", err)
	} else if _, statErr := os.Stat(project.ConfigFileName); os.IsNotExist(statErr) {
		printSkip("", "no quill.yaml in this directory")
	} else if cfg, cfgErr := project.LoadConfig(root); cfgErr != nil {
		failD("cannot parse quill.yaml: %v", cfgErr)
	} else {
		printOK("", fmt.Sprintf("valid YAML — %d skill(s) declared", len(cfg.Skills)))
	}

	fmt.Println()
	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	printOK("", "everything looks healthy")
	return nil
}

func runDoctorFix(_ *cobra.Command, _ []string) error {
	reg, err := openRegistry(nil)
	if err != nil {
		return err
	}

	printSection("quill doctor fix")
	removed, err := reg.CleanupTempFiles(tempFileMaxAge)
	if err != nil {
		return err
	}
	if removed == 0 {
		printOK("", "no orphaned temp files — nothing to fix")
		return nil
	}
	printOK("", fmt.Sprintf("%d orphaned temp file(s) removed", removed))
	return nil
}

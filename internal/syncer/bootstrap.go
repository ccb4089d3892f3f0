package syncer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quillhq/quill/internal/fsutil"
)

// BootstrapFileName is the fixed onboarding document written into the
// install directory on every sync.
const BootstrapFileName = "README.md"

const bootstrapDoc = `# Skills

This directory is managed by quill. Each subdirectory holds one installed
skill: its instructions in SKILL.md and its metadata in meta.json.

To discover what is available, read index.md. To use a skill, open
<slug>/SKILL.md and follow its instructions.

Do not edit these files by hand — they are overwritten on the next
` + "`quill sync`" + `. To change the installed set, edit quill.yaml at the
project root and run ` + "`quill sync`" + `.
`

func writeBootstrap(installDir string) error {
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return fmt.Errorf("cannot create install directory %s: %w", installDir, err)
	}
	path := filepath.Join(installDir, BootstrapFileName)
	if err := fsutil.WriteFileAtomic(path, []byte(bootstrapDoc), 0o644); err != nil {
		return fmt.Errorf("cannot write bootstrap document: %w", err)
	}
	return nil
}

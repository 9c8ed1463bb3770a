package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImportScriptName is the replayable bind script written next to the
// generated resource files.
const ImportScriptName = "import.sh"

// Directive binds one declared resource address to its live identity.
// It is consumed exactly once, either by the bind runner or by an operator
// replaying the generated script; nothing is persisted beyond the run.
type Directive struct {
	Address string `json:"address" yaml:"address"`
	ID      string `json:"id" yaml:"id"`
}

// Command renders the directive as a terraform import invocation.
func (d Directive) Command() string {
	return fmt.Sprintf("terraform import %q %q", d.Address, d.ID)
}

// WriteImportScript writes every directive of a batch into a single shell
// script so a partially applied batch can be replayed without the CLI.
func WriteImportScript(dir string, directives []Directive) (string, error) {
	path := filepath.Join(dir, ImportScriptName)

	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n")
	b.WriteString("set -uo pipefail\n\n")
	b.WriteString("# generated import directives; failures usually mean the\n")
	b.WriteString("# resource is already bound and are safe to ignore\n")
	for _, d := range directives {
		b.WriteString(d.Command())
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		return "", fmt.Errorf("failed to write import script %q: %w", path, err)
	}
	return path, nil
}

// Package terraform shells out to the terraform binary to execute import
// directives. Terraform has no public bulk-import API to link against, so
// binding remains one subprocess per directive; the generated import script
// covers replay without the CLI.
package terraform

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

const defaultBinary = "terraform"

// CLIRunner implements importer.Runner by invoking `terraform import` in
// the output directory. Terraform serializes its own state mutation; the
// runner relies on that and takes no lock of its own.
type CLIRunner struct {
	// Binary overrides the terraform executable name, mainly for tests
	// and wrapper binaries (tofu).
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

func (r *CLIRunner) Import(ctx context.Context, dir, address, id string) error {
	binary := r.Binary
	if binary == "" {
		binary = defaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, "import", address, id)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("terraform import %s: %w", address, err)
	}
	return nil
}

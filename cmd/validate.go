package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"skilld/internal/skill"
)

// validateCmd parses every description file below a skill root and reports
// per-file problems without loading anything into a registry.
var validateCmd = &cobra.Command{
	Use:   "validate <skill-root>",
	Short: "Validate all capability description files below a directory",
	Long: `Parses every markdown description file below the given skill root and
reports validation problems per file. Handler references are not resolved,
so an unknown handler is not an error here; it only makes a capability
documentation-only at serve time.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	root := args[0]
	out := cmd.OutOrStdout()

	var checked, failed int
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != ".md" {
			return nil
		}
		checked++

		var parseErr error
		if skill.IsDomainIndexFile(path) {
			_, parseErr = skill.ParseDomainIndex(path)
		} else {
			_, parseErr = skill.ParseFile(root, path, nil)
		}
		if parseErr != nil {
			failed++
			fmt.Fprintf(out, "FAIL %v\n", parseErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}

	fmt.Fprintf(out, "%d files checked, %d invalid\n", checked, failed)
	if failed > 0 {
		return fmt.Errorf("%d invalid description files", failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

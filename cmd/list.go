package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skilld/internal/config"
	"skilld/internal/formatting"
	"skilld/internal/handler"
	"skilld/internal/registry"
	"skilld/pkg/logging"
)

var (
	listConfigPath string
	listDomain     string
	listSearch     string
)

// listCmd loads the skill root and prints registered capabilities or
// domains as a table.
var listCmd = &cobra.Command{
	Use:   "list [skills|domains]",
	Short: "List capability definitions or domains",
	Long: `Loads all capability definitions below the configured skill root and
prints them as a table. Invalid files are skipped with a warning, the same
way the server treats them.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"skills", "domains"},
	RunE:      runList,
}

func runList(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(logging.LevelWarn, os.Stderr)

	configPath := listConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	reg := registry.New(cfg.SkillRoot, handler.NewTable())
	if err := reg.LoadAll(); err != nil {
		return fmt.Errorf("failed to load capability definitions: %w", err)
	}

	what := "skills"
	if len(args) == 1 {
		what = args[0]
	}

	switch what {
	case "domains":
		formatting.RenderDomains(cmd.OutOrStdout(), reg.ListDomainIndexes())
	default:
		defs := reg.ListAll()
		if listSearch != "" {
			defs = reg.Search(listSearch)
		} else if listDomain != "" {
			defs = reg.ListByDomain(listDomain)
		}
		formatting.RenderSkills(cmd.OutOrStdout(), defs)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listConfigPath, "config-path", "", "Custom configuration directory path")
	listCmd.Flags().StringVar(&listDomain, "domain", "", "Only list capabilities in this domain")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only list capabilities matching this substring")
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewer/internal/knowledge"
	"github.com/abhisek/interviewer/internal/logger"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Browse and search the IT knowledge catalogue",
}

var knowledgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogue entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		category, err := categoryFlag(cmd)
		if err != nil {
			return err
		}

		items := knowledge.DefaultCatalogue()
		if cfg.Knowledge.CataloguePath != "" {
			items, err = knowledge.LoadCatalogueFile(cfg.Knowledge.CataloguePath)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-9s  %-22s  %-20s  %s\n", "Category", "Topic", "Role", "Text")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		shown := 0
		for _, it := range items {
			if category != "" && it.Category != category {
				continue
			}
			fmt.Fprintf(out, "%-9s  %-22s  %-20s  %s\n",
				it.Category, truncate(it.Topic, 22), truncate(it.TargetRole, 20), truncate(it.Text, 60))
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(out, "No entries found.")
		}
		return nil
	},
}

var knowledgeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a similarity search over the catalogue",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		category, err := categoryFlag(cmd)
		if err != nil {
			return err
		}
		k, _ := cmd.Flags().GetInt("limit")

		log := logger.New(logger.Options{File: cfg.Paths.LogFile, Verbose: cfg.Verbose})
		defer func() { _ = log.Sync() }()

		kb, err := loadKnowledge(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("load knowledge: %w", err)
		}

		out := cmd.OutOrStdout()
		results := kb.Search(cmd.Context(), strings.Join(args, " "), category, k)
		if len(results) == 0 {
			fmt.Fprintln(out, "No matches.")
			return nil
		}
		for i, it := range results {
			fmt.Fprintf(out, "%2d. [%s] %s\n    %s\n", i+1, it.Category, it.Topic, it.Text)
		}
		return nil
	},
}

// categoryFlag parses --category, returning "" when unset.
func categoryFlag(cmd *cobra.Command) (knowledge.Category, error) {
	s, _ := cmd.Flags().GetString("category")
	if s == "" {
		return "", nil
	}
	return knowledge.ParseCategory(s)
}

func init() {
	knowledgeListCmd.Flags().StringP("category", "c", "", "Filter by category (backend, frontend, qa, devops, ml, general)")
	knowledgeSearchCmd.Flags().StringP("category", "c", "", "Restrict results to one category")
	knowledgeSearchCmd.Flags().IntP("limit", "k", 3, "Number of results")

	knowledgeCmd.AddCommand(knowledgeListCmd)
	knowledgeCmd.AddCommand(knowledgeSearchCmd)
}

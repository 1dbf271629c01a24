package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/interviewer/internal/config"
	"github.com/abhisek/interviewer/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "interviewer",
	Short: "Adaptive technical interviewer",
	Long: "Interviewer runs a technical interview in the terminal, adapting question " +
		"difficulty to each answer, and ends with a structured hiring report.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML config file (default $XDG_CONFIG_HOME/interviewer/config.toml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTERVIEWER_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	addInterviewFlags(rootCmd)

	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(knowledgeCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Paths.DB = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db or the config file,
// then INTERVIEWER_DB env var, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if p := cfg.Paths.DB; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore loads config and opens the database for read-only commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

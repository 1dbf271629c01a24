package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewer/internal/app"
	"github.com/abhisek/interviewer/internal/console"
	"github.com/abhisek/interviewer/internal/screens/interview"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Start an interview",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func init() {
	addInterviewFlags(interviewCmd)
}

func addInterviewFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("plain", false, "Use a plain line-by-line dialogue instead of the full-screen interface")
	cmd.Flags().String("name", "", "Candidate name")
	cmd.Flags().String("role", "", "Target position, e.g. \"Backend Developer\"")
	cmd.Flags().Int("max-questions", 0, "Maximum number of questions (default from config)")
}

// runInterview opens the runtime and runs one interview in the chosen mode.
func runInterview(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	plain, _ := cmd.Flags().GetBool("plain")
	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")
	if n, _ := cmd.Flags().GetInt("max-questions"); n != 0 {
		if n < 1 {
			return fmt.Errorf("--max-questions must be at least 1, got %d", n)
		}
		cfg.Interview.MaxQuestions = n
	}

	rt, err := openRuntime(ctx, cfg, plain)
	if err != nil {
		return err
	}
	defer rt.Close()

	stopWord := ""
	if words := cfg.Interview.StopWords; len(words) > 0 {
		stopWord = words[len(words)-1]
	}

	if plain {
		return console.Run(ctx, rt.newController(), console.Options{
			In:       cmd.InOrStdin(),
			Out:      cmd.OutOrStdout(),
			Name:     name,
			Role:     role,
			StopWord: stopWord,
		})
	}

	return app.Run(app.Options{
		NewController: func() interview.Controller { return rt.newController() },
		Sessions:      rt.store.SessionRepo(),
		MaxQuestions:  cfg.Interview.MaxQuestions,
		StopWord:      stopWord,
		Name:          name,
		Role:          role,
	})
}

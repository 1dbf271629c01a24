package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/sessionlog"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect past interviews",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		recs, err := s.SessionRepo().ListSessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No interviews yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-18s  %-20s  %5s  %-7s  %s\n",
			"ID", "Started", "Candidate", "Role", "Turns", "Grade", "Verdict")
		fmt.Fprintln(out, strings.Repeat("─", 124))
		for _, r := range recs {
			grade, verdict := r.Grade, r.Recommendation
			if grade == "" {
				grade = "-"
			}
			if verdict == "" {
				verdict = "-"
			}
			fmt.Fprintf(out, "%-36s  %-16s  %-18s  %-20s  %5d  %-7s  %s\n",
				r.ID,
				r.StartedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.CandidateName, 18),
				truncate(r.TargetRole, 20),
				r.TurnCount,
				grade,
				verdict,
			)
		}
		return nil
	},
}

var sessionsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the feedback report of an interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := loadSession(cmd, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if rec.Report == nil {
			fmt.Fprintln(out, "No feedback available.")
			return nil
		}
		return feedback.Render(out, rec.State.CandidateName, rec.State.TargetRole, rec.Report)
	},
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write an interview as a JSON log to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := loadSession(cmd, args[0])
		if err != nil {
			return err
		}
		return sessionlog.FromRecord(rec).Write(cmd.OutOrStdout())
	},
}

func loadSession(cmd *cobra.Command, id string) (*session.Record, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	sr, err := s.SessionRepo().GetSession(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sr == nil {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return sessionlog.FromStored(sr)
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 20, "Number of interviews to show")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsViewCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
}

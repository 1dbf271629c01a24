// Package console runs an interview as a plain line-oriented dialogue,
// for terminals without full-screen support and for piped input.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/session"
)

// ErrInputClosed is returned when input ends before the interview starts.
var ErrInputClosed = errors.New("input closed before the interview started")

// Controller drives one interview. *session.Controller satisfies it.
type Controller interface {
	Start(ctx context.Context, name, role string) (string, error)
	SubmitAnswer(ctx context.Context, answer string) (session.Result, error)
	State() session.State
}

// Options configure a console interview. Missing name or role are asked
// for on In.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Name     string
	Role     string
	StopWord string
}

var (
	interviewerLabel = color.New(color.FgHiBlue, color.Bold)
	candidatePrompt  = color.New(color.FgCyan, color.Bold)
	hint             = color.New(color.Faint)
	savedNote        = color.New(color.FgGreen)
)

// Run conducts the interview until the controller returns a report. End of
// input finishes the interview as if the stop word had been sent.
func Run(ctx context.Context, ctrl Controller, opts Options) error {
	if opts.StopWord == "" {
		opts.StopWord = session.DefaultStopWords[len(session.DefaultStopWords)-1]
	}
	in := bufio.NewScanner(opts.In)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := opts.Out

	name, err := ask(in, out, "Your name: ", opts.Name)
	if err != nil {
		return err
	}
	role, err := ask(in, out, "Position: ", opts.Role)
	if err != nil {
		return err
	}

	if _, err := ctrl.Start(ctx, name, role); err != nil {
		return fmt.Errorf("start interview: %w", err)
	}
	for _, t := range ctrl.State().Turns {
		say(out, t.VisibleQuestion)
	}
	hint.Fprintf(out, "Type %q to finish at any time.\n\n", opts.StopWord)

	for {
		candidatePrompt.Fprint(out, "> ")
		answer := opts.StopWord
		if in.Scan() {
			answer = in.Text()
		} else if err := in.Err(); err != nil {
			return fmt.Errorf("read answer: %w", err)
		}

		res, err := ctrl.SubmitAnswer(ctx, answer)
		if err != nil {
			return err
		}
		if res.Kind == session.ResultReport {
			fmt.Fprintln(out)
			return finish(out, name, role, res)
		}
		say(out, res.Question)
	}
}

// ask returns preset when given, otherwise reads lines until a non-empty
// one arrives.
func ask(in *bufio.Scanner, out io.Writer, prompt, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	for {
		candidatePrompt.Fprint(out, prompt)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return "", err
			}
			return "", ErrInputClosed
		}
		if v := strings.TrimSpace(in.Text()); v != "" {
			return v, nil
		}
	}
}

func say(out io.Writer, text string) {
	interviewerLabel.Fprint(out, "Interviewer: ")
	fmt.Fprintln(out, text)
	fmt.Fprintln(out)
}

func finish(out io.Writer, name, role string, res session.Result) error {
	report := res.Report
	if report == nil {
		hint.Fprintln(out, "No feedback available.")
		return nil
	}
	if err := feedback.Render(out, name, role, report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if res.LogRef != "" {
		savedNote.Fprintf(out, "Saved to %s\n", res.LogRef)
	}
	return nil
}

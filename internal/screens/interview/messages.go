package interview

import (
	"github.com/abhisek/interviewer/internal/session"
)

// startedMsg is sent once the controller has opened the interview.
type startedMsg struct {
	Turns []session.Turn
	Err   error
}

// answeredMsg carries the controller's response to one answer.
type answeredMsg struct {
	Result    session.Result
	TurnCount int
	Err       error
}

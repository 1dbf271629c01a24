package session

import (
	"context"
	"errors"

	"github.com/abhisek/interviewer/internal/feedback"
)

// Record is a finished interview handed to sinks.
type Record struct {
	State  State
	Report *feedback.Report
}

// Sink persists finished interviews. Save returns a reference to what was
// written, such as a file path.
type Sink interface {
	Save(ctx context.Context, rec *Record) (string, error)
}

// MultiSink saves to every sink. It returns the first non-empty reference
// and all errors joined.
type MultiSink []Sink

func (m MultiSink) Save(ctx context.Context, rec *Record) (string, error) {
	var (
		ref  string
		errs []error
	)
	for _, s := range m {
		r, err := s.Save(ctx, rec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ref == "" {
			ref = r
		}
	}
	return ref, errors.Join(errs...)
}

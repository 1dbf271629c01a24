package sessionlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/abhisek/interviewer/internal/session"
)

// FileSink writes each finished interview to
// <Dir>/<candidate>_<YYYYMMDD_HHMMSS>.json.
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Save writes the log and returns its path. An existing file is never
// overwritten; the session ID is appended instead.
func (s *FileSink) Save(_ context.Context, rec *session.Record) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create sessions dir: %w", err)
	}

	base := FileName(rec.State)
	path := filepath.Join(s.Dir, base+".json")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		path = filepath.Join(s.Dir, base+"_"+shortID(rec.State.SessionID)+".json")
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("create session log: %w", err)
	}

	if err := writeLog(f, FromRecord(rec)); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write session log: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close session log: %w", err)
	}
	return path, nil
}

// writeLog is swapped in tests to simulate a failing disk.
var writeLog = func(w io.Writer, l *Log) error {
	return l.Write(w)
}

// FileName is the log name without extension: the candidate name made
// filesystem-safe, then the start time.
func FileName(st session.State) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			return r
		case unicode.IsSpace(r), r == '_':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(st.CandidateName))
	if name == "" {
		name = "candidate"
	}
	return name + "_" + st.StartedAt.Format("20060102_150405")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package tracelog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/trinityguard/sentinel/event"
)

// FileSink appends one JSON object per line to an output file: the
// file is a JSON-sequence, readable incrementally, never rewritten.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink returns a sink for path. It does not open the file; each
// WriteTrace opens path for append, creating it if necessary.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) WriteTrace(trace event.WorkflowTrace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("tracelog: opening %q: %w", s.path, err)
	}
	defer f.Close()

	line, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("tracelog: marshaling trace: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("tracelog: writing %q: %w", s.path, err)
	}
	return nil
}

package webui

import (
	"sync"
	"time"
)

// JobStatus tracks the most recent job sent to the printer.
type JobStatus struct {
	mu        sync.RWMutex
	Printing  bool   `json:"printing"`
	LastError string `json:"lastError,omitempty"`
	LastJob   string `json:"lastJob,omitempty"` // RFC3339
	Model     int    `json:"model,omitempty"`
	Bytes     int64  `json:"bytes"`
	Printer   string `json:"printer,omitempty"`
}

// Snapshot returns a copy of the current status.
func (s *JobStatus) Snapshot() JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return JobStatus{
		Printing:  s.Printing,
		LastError: s.LastError,
		LastJob:   s.LastJob,
		Model:     s.Model,
		Bytes:     s.Bytes,
		Printer:   s.Printer,
	}
}

// Begin marks a job as in progress. It reports false when another job is
// still printing.
func (s *JobStatus) Begin(model int, printer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Printing {
		return false
	}
	s.Printing = true
	s.LastError = ""
	s.Model = model
	s.Printer = printer
	return true
}

// SetResult records the outcome of a finished job.
func (s *JobStatus) SetResult(err error, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Printing = false
	s.LastJob = time.Now().UTC().Format(time.RFC3339)
	s.Bytes = n
	if err != nil {
		s.LastError = err.Error()
	} else {
		s.LastError = ""
	}
}

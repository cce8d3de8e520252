package sourceproc

import (
	"errors"
	"fmt"

	"m3u-helper/category"
)

// ErrNotEligible is returned when a file given to FormatOne is not a source
// playlist.
var ErrNotEligible = errors.New("not an eligible playlist")

// SourceError reports a source playlist that could not be read. Scans skip
// such files and continue.
type SourceError struct {
	File string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("error reading source %s: %v", e.File, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// FileFailure records a file skipped during a scan.
type FileFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Result describes one format or merge run.
type Result struct {
	Sources []string                  `json:"sources"`
	Output  string                    `json:"output,omitempty"`
	Skipped bool                      `json:"skipped"`
	Reason  string                    `json:"reason,omitempty"`
	Parsed  int                       `json:"parsed"`
	Written int                       `json:"written"`
	Dropped int                       `json:"dropped"`
	Counts  map[category.Category]int `json:"counts,omitempty"`
	Failed  []FileFailure             `json:"failed,omitempty"`
}

// Summary collects the results of formatting several files.
type Summary struct {
	Results []*Result     `json:"results"`
	Failed  []FileFailure `json:"failed,omitempty"`
}

func (s *Summary) Formatted() int {
	n := 0
	for _, r := range s.Results {
		if !r.Skipped {
			n++
		}
	}
	return n
}

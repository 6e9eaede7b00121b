package sync

import (
	"fmt"
	"strings"
	"time"
)

// FileFailure records one file that could not be processed this run.
type FileFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary reports the outcome of one sync run. It is informational only:
// callers never branch on it.
type Summary struct {
	Ingested  int           `json:"ingested"`
	Updated   int           `json:"updated"`
	Skipped   int           `json:"skipped"`
	Deleted   int           `json:"deleted"`
	Failed    []FileFailure `json:"failed,omitempty"`
	TrackedAt int           `json:"tracked_files"`
	Duration  time.Duration `json:"duration"`
}

// String renders the summary for logs and the CLI.
func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sync complete in %s: %d ingested, %d updated, %d skipped, %d deleted, %d failed (%d files tracked)",
		s.Duration.Round(time.Millisecond),
		s.Ingested, s.Updated, s.Skipped, s.Deleted, len(s.Failed), s.TrackedAt)
	for _, f := range s.Failed {
		fmt.Fprintf(&sb, "\n  failed: %s: %s", f.Path, f.Reason)
	}
	return sb.String()
}

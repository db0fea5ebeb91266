package runlog

import "fmt"

// Step statuses recorded in the run log.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry is one line in the hash-chained bootstrap run log. All fields
// are flat scalars to guarantee deterministic json.Marshal field order
// for reproducible hashing.
type Entry struct {
	Timestamp string `json:"ts"`
	RunID     string `json:"run_id"`
	Step      string `json:"step"`
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
	PrevHash  string `json:"prev_hash"`
}

// Format renders the entry as one aligned human-readable line for
// tail-style output.
func (e Entry) Format() string {
	return fmt.Sprintf("%s  %-8s %-22s %s", e.Timestamp, e.Status, e.Step, e.Detail)
}

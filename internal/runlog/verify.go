package runlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// VerifyResult is the outcome of a chain verification.
type VerifyResult struct {
	Valid     bool   `json:"valid"`
	Lines     int    `json:"lines"`
	Runs      int    `json:"runs"`
	Error     string `json:"error,omitempty"`
	ErrorLine int    `json:"error_line,omitempty"`
}

// Verify walks the run log at path and checks every link: the first
// entry must carry GenesisHash and each later entry the hash of the
// line before it. Runs counts the run_id segments seen along the
// chain, so one log file accumulating several quickstart invocations
// reports how many it holds.
func Verify(path string) VerifyResult {
	f, err := os.Open(path)
	if err != nil {
		return VerifyResult{Error: fmt.Sprintf("open: %v", err)}
	}
	defer f.Close()

	var (
		line    int
		runs    int
		lastRun string
	)
	expected := GenesisHash

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line++

		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return VerifyResult{Error: fmt.Sprintf("bad entry: %v", err), ErrorLine: line}
		}
		if entry.PrevHash != expected {
			return VerifyResult{
				Error:     fmt.Sprintf("entry links to %s, expected %s", entry.PrevHash, expected),
				ErrorLine: line,
			}
		}
		if entry.RunID != lastRun {
			runs++
			lastRun = entry.RunID
		}

		// Hash before the scanner reuses its buffer on the next line.
		expected = HashLine(scanner.Bytes())
	}
	if err := scanner.Err(); err != nil {
		return VerifyResult{Error: fmt.Sprintf("scan: %v", err)}
	}

	return VerifyResult{Valid: true, Lines: line, Runs: runs}
}

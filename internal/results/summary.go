package results

import "time"

// RunResult tracks the execution of a single run-wrapper.
// ExitCode records what the wrapped executable actually returned; the
// wrapper itself reported success regardless.
type RunResult struct {
	Name     string // Run-wrapper target name
	ExitCode int
	Duration time.Duration
	Counts   TestCounts
}

// RunSummary contains aggregated results from running all wrappers.
type RunSummary struct {
	Results       []RunResult
	TotalDuration time.Duration
}

// Counts aggregates the parsed counts across all wrapper runs.
func (s *RunSummary) Counts() TestCounts {
	var total TestCounts
	for i := range s.Results {
		total.Add(&s.Results[i].Counts)
	}
	return total
}

// FailedRuns returns the names of wrappers whose executables exited non-zero.
func (s *RunSummary) FailedRuns() []string {
	var failed []string
	for _, r := range s.Results {
		if r.ExitCode != 0 {
			failed = append(failed, r.Name)
		}
	}
	return failed
}

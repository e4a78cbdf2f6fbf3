// Package results reads and aggregates structured test results.
//
// Run-wrappers direct their executables to emit JUnit-style XML files under
// <buildRoot>/test_results/<projectName>/. This package parses those files
// and aggregates counts across the whole run.
package results

// FailedTest holds information about a single failed test case.
type FailedTest struct {
	Name   string // Test case name (e.g., "suite.case")
	Reason string // Failure reason/error message
}

// TestCounts holds parsed test result counts.
type TestCounts struct {
	Passed      int
	Failed      int
	Skipped     int
	Total       int
	Parsed      bool         // true if counts were successfully extracted
	FailedTests []FailedTest // details of failed tests
}

// Add adds another TestCounts to this one, aggregating the counts.
// The Parsed flag uses "sticky true" semantics: if any added TestCounts
// has Parsed=true, the aggregate will have Parsed=true. This means
// Parsed indicates "at least one result was successfully parsed",
// not "all results were parsed".
func (tc *TestCounts) Add(other *TestCounts) {
	if other == nil {
		return
	}
	tc.Passed += other.Passed
	tc.Failed += other.Failed
	tc.Skipped += other.Skipped
	tc.Total += other.Total
	tc.FailedTests = append(tc.FailedTests, other.FailedTests...)
	if other.Parsed {
		tc.Parsed = true
	}
}

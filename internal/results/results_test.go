package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTestCounts_Add(t *testing.T) {
	total := TestCounts{}
	total.Add(&TestCounts{Passed: 2, Failed: 1, Total: 3, Parsed: true,
		FailedTests: []FailedTest{{Name: "suite.case", Reason: "boom"}}})
	total.Add(&TestCounts{Passed: 1, Skipped: 1, Total: 2})
	total.Add(nil)

	if total.Passed != 3 || total.Failed != 1 || total.Skipped != 1 || total.Total != 5 {
		t.Errorf("counts = %+v", total)
	}
	if !total.Parsed {
		t.Error("Parsed = false, want sticky true")
	}
	if len(total.FailedTests) != 1 {
		t.Errorf("len(FailedTests) = %d, want 1", len(total.FailedTests))
	}
}

const sampleSuites = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites tests="4" failures="1">
  <testsuite name="AlphaSuite" tests="3" failures="1">
    <testcase name="adds" classname="AlphaSuite"/>
    <testcase name="subtracts" classname="AlphaSuite"/>
    <testcase name="divides" classname="AlphaSuite">
      <failure message="division by zero"/>
    </testcase>
  </testsuite>
  <testsuite name="BetaSuite" tests="1">
    <testcase name="noop">
      <skipped/>
    </testcase>
  </testsuite>
</testsuites>`

const sampleBareSuite = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="GammaSuite" tests="1">
  <testcase name="works"/>
</testsuite>`

func TestParseJUnit(t *testing.T) {
	counts, err := ParseJUnit(strings.NewReader(sampleSuites))
	if err != nil {
		t.Fatalf("ParseJUnit() error = %v", err)
	}

	if counts.Passed != 2 || counts.Failed != 1 || counts.Skipped != 1 || counts.Total != 4 {
		t.Errorf("counts = %+v", counts)
	}
	if !counts.Parsed {
		t.Error("Parsed = false, want true")
	}
	if len(counts.FailedTests) != 1 {
		t.Fatalf("len(FailedTests) = %d, want 1", len(counts.FailedTests))
	}
	if counts.FailedTests[0].Name != "AlphaSuite.divides" {
		t.Errorf("failed name = %q, want %q", counts.FailedTests[0].Name, "AlphaSuite.divides")
	}
	if counts.FailedTests[0].Reason != "division by zero" {
		t.Errorf("failed reason = %q", counts.FailedTests[0].Reason)
	}
}

func TestParseJUnit_BareSuiteRoot(t *testing.T) {
	counts, err := ParseJUnit(strings.NewReader(sampleBareSuite))
	if err != nil {
		t.Fatalf("ParseJUnit() error = %v", err)
	}
	if counts.Passed != 1 || counts.Total != 1 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestParseJUnit_NotXML(t *testing.T) {
	_, err := ParseJUnit(strings.NewReader("definitely not xml"))
	if err == nil {
		t.Fatal("ParseJUnit() expected error for non-XML input")
	}
}

func TestCollectDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "test_alpha.xml"), sampleSuites)
	writeFile(t, filepath.Join(dir, "test_gamma.xml"), sampleBareSuite)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	counts, err := CollectDir(dir)
	if err != nil {
		t.Fatalf("CollectDir() error = %v", err)
	}
	if counts.Passed != 3 || counts.Failed != 1 || counts.Skipped != 1 || counts.Total != 5 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestCollectDir_Missing(t *testing.T) {
	counts, err := CollectDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("CollectDir() error = %v", err)
	}
	if counts.Parsed {
		t.Error("Parsed = true for missing directory, want false")
	}
	if counts.Total != 0 {
		t.Errorf("Total = %d, want 0", counts.Total)
	}
}

func TestRunSummary(t *testing.T) {
	s := RunSummary{
		Results: []RunResult{
			{Name: "run_test_alpha", ExitCode: 1, Duration: time.Second,
				Counts: TestCounts{Passed: 2, Failed: 1, Total: 3, Parsed: true}},
			{Name: "run_test_beta", ExitCode: 0,
				Counts: TestCounts{Passed: 4, Total: 4, Parsed: true}},
		},
	}

	counts := s.Counts()
	if counts.Passed != 6 || counts.Failed != 1 || counts.Total != 7 {
		t.Errorf("Counts() = %+v", counts)
	}

	failed := s.FailedRuns()
	if len(failed) != 1 || failed[0] != "run_test_alpha" {
		t.Errorf("FailedRuns() = %v, want [run_test_alpha]", failed)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

package results

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// junitSuites is the <testsuites> root element emitted by most frameworks.
type junitSuites struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []junitSuite `xml:"testsuite"`
}

// junitSuite is a single <testsuite> element. Some frameworks emit it as the
// document root without a <testsuites> wrapper.
type junitSuite struct {
	Name  string      `xml:"name,attr"`
	Cases []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitMessage `xml:"failure"`
	Error     *junitMessage `xml:"error"`
	Skipped   *junitMessage `xml:"skipped"`
}

type junitMessage struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

// ParseJUnit extracts test counts from a JUnit-style XML document.
// Both <testsuites> and bare <testsuite> roots are accepted.
func ParseJUnit(r io.Reader) (TestCounts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return TestCounts{}, err
	}

	var suites []junitSuite

	var doc junitSuites
	if err := xml.Unmarshal(data, &doc); err == nil {
		suites = doc.Suites
	} else {
		var single junitSuite
		if err := xml.Unmarshal(data, &single); err != nil {
			return TestCounts{}, fmt.Errorf("not a JUnit XML document: %w", err)
		}
		suites = []junitSuite{single}
	}

	counts := TestCounts{Parsed: true}
	for _, suite := range suites {
		for _, c := range suite.Cases {
			counts.Total++
			switch {
			case c.Skipped != nil:
				counts.Skipped++
			case c.Failure != nil || c.Error != nil:
				counts.Failed++
				counts.FailedTests = append(counts.FailedTests, FailedTest{
					Name:   caseName(suite, c),
					Reason: failureReason(c),
				})
			default:
				counts.Passed++
			}
		}
	}

	return counts, nil
}

// ParseJUnitFile parses a single result file.
func ParseJUnitFile(path string) (TestCounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return TestCounts{}, err
	}
	defer func() { _ = f.Close() }()

	counts, err := ParseJUnit(f)
	if err != nil {
		return TestCounts{}, fmt.Errorf("%s: %w", path, err)
	}
	return counts, nil
}

// CollectDir parses every .xml file in dir (non-recursive) and aggregates
// the counts. A missing directory yields empty, unparsed counts: the run
// simply produced no results yet.
func CollectDir(dir string) (TestCounts, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return TestCounts{}, nil
		}
		return TestCounts{}, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".xml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var total TestCounts
	for _, name := range names {
		counts, err := ParseJUnitFile(filepath.Join(dir, name))
		if err != nil {
			return TestCounts{}, err
		}
		total.Add(&counts)
	}
	return total, nil
}

func caseName(suite junitSuite, c junitCase) string {
	prefix := c.ClassName
	if prefix == "" {
		prefix = suite.Name
	}
	if prefix == "" {
		return c.Name
	}
	return prefix + "." + c.Name
}

func failureReason(c junitCase) string {
	msg := c.Failure
	if msg == nil {
		msg = c.Error
	}
	if msg.Message != "" {
		return msg.Message
	}
	return strings.TrimSpace(msg.Body)
}

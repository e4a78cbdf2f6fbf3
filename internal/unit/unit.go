// Package unit derives canonical names and paths for registered test units.
package unit

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AndreyAkinshin/testreg/internal/errors"
)

// ResultsDirName is the directory under the build root where result files are written.
const ResultsDirName = "test_results"

// namePattern restricts test names to identifier characters so the name can
// double as a target name and as a source file basename.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Descriptor represents one test executable to be registered.
// Immutable after creation; all fields are derived from the test name.
type Descriptor struct {
	// Name is the test name, used both as the executable target name
	// and as the source file basename.
	Name string

	// SourceFile is the single source file implied by the test name.
	SourceFile string

	// ResultsPath is where the run-wrapper directs structured results:
	// <buildRoot>/test_results/<projectName>/<testName>.xml
	ResultsPath string
}

// ValidateName checks that name is usable as a target name.
func ValidateName(name string) error {
	if name == "" {
		return errors.InvalidName(name, "name is empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.InvalidName(name, "name contains a path separator")
	}
	if strings.ContainsAny(name, " \t\n") {
		return errors.InvalidName(name, "name contains whitespace")
	}
	if !namePattern.MatchString(name) {
		return errors.InvalidName(name, "name must match ^[A-Za-z_][A-Za-z0-9_]*$")
	}
	return nil
}

// New derives a descriptor from a test name. Pure; no side effects.
func New(testName, projectName, buildRoot, sourceExt string) (*Descriptor, error) {
	if err := ValidateName(testName); err != nil {
		return nil, err
	}

	return &Descriptor{
		Name:        testName,
		SourceFile:  testName + sourceExt,
		ResultsPath: filepath.Join(buildRoot, ResultsDirName, projectName, testName+".xml"),
	}, nil
}

// WrapperName returns the name of the run-wrapper target for a test.
func WrapperName(testName string) string {
	return "run_" + testName
}

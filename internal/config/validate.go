package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AndreyAkinshin/testreg/internal/unit"
)

// projectNamePattern restricts project names: must start with a lowercase
// letter, may contain lowercase letters, digits, and non-consecutive,
// non-trailing hyphens. The project name becomes a results directory name.
var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidationError represents a manifest validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for semantic errors.
func Validate(cfg *Config) error {
	if err := ValidateProjectName(cfg.Project.Name); err != nil {
		return err
	}
	if err := validateBuild(cfg.Build); err != nil {
		return err
	}
	return validateTests(cfg.Tests)
}

// ValidateProjectName checks that name is a valid project name.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "project.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, hyphens)",
		}
	}
	return nil
}

func validateBuild(build *BuildConfig) error {
	if build == nil {
		return nil
	}
	if build.Compiler != "" {
		for _, placeholder := range []string{"{src}", "{out}"} {
			if !strings.Contains(build.Compiler, placeholder) {
				return &ValidationError{
					Field:   "build.compiler",
					Message: fmt.Sprintf("must contain the %s placeholder", placeholder),
				}
			}
		}
	}
	if build.SourceExt != "" && !strings.HasPrefix(build.SourceExt, ".") {
		return &ValidationError{
			Field:   "build.source_ext",
			Message: "must start with a dot",
		}
	}
	return nil
}

func validateTests(tests []string) error {
	for i, name := range tests {
		if err := unit.ValidateName(name); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("tests[%d]", i),
				Message: err.Error(),
			}
		}
	}
	return nil
}

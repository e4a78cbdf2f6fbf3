// Package config provides manifest loading and validation for .testreg/manifest.yaml.
package config

// Config represents the complete manifest.yaml configuration.
type Config struct {
	Project   ProjectConfig    `yaml:"project"`
	Build     *BuildConfig     `yaml:"build,omitempty"`
	Framework *FrameworkConfig `yaml:"framework,omitempty"`
	Tests     []string         `yaml:"tests,omitempty"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// BuildConfig configures where and how test executables are built.
type BuildConfig struct {
	// Root is the build root directory; binaries go to <root>/bin and
	// results to <root>/test_results/<project>.
	Root string `yaml:"root,omitempty"`

	// SourceExt is the test source extension. Each test name maps 1:1 to
	// a source file <name><ext>.
	SourceExt string `yaml:"source_ext,omitempty"`

	// Compiler is the external compile command template. It must contain
	// the {src} and {out} placeholders.
	Compiler string `yaml:"compiler,omitempty"`
}

// FrameworkConfig configures test-framework detection and invocation.
type FrameworkConfig struct {
	// EntryCandidates lists the entry target names probed in order.
	EntryCandidates []string `yaml:"entry_candidates,omitempty"`

	// ResultFlag is prepended to the results path when invoking a test
	// binary (e.g. "--gtest_output=xml:").
	ResultFlag string `yaml:"result_flag,omitempty"`
}

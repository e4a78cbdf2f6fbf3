package config

import (
	"testing"
)

// FuzzParseManifest tests YAML parsing of Config with arbitrary input.
// Run: go test -fuzz=FuzzParseManifest -fuzztime=30s ./internal/config
func FuzzParseManifest(f *testing.F) {
	seeds := []string{
		// Valid minimal manifest
		"project:\n  name: test\n",
		// Valid manifest with all sections
		"project:\n  name: full\nbuild:\n  root: out\nframework:\n  result_flag: \"-o:\"\ntests:\n  - test_a\n",
		// Edge cases: empty document
		"",
		// Edge cases: null document
		"null",
		// Edge cases: scalar root
		"just a string",
		// Edge cases: sequence root
		"- a\n- b\n",
		// Edge cases: unicode values
		"project:\n  name: test\n  description: \"项目 プロジェクト проект\"\n",
		// Edge cases: anchors and aliases
		"project: &p\n  name: test\nbuild: *p\n",
		// Malformed: unclosed flow sequence
		"tests: [a, b",
		// Malformed: tab indentation
		"project:\n\tname: test\n",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must never panic; errors are fine.
		cfg, err := parse(data)
		if err != nil {
			return
		}
		// A successfully parsed config must survive defaults and validation
		// without panicking.
		applyDefaults(cfg)
		_ = Validate(cfg)
	})
}

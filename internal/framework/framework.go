// Package framework resolves the external test-framework entry target.
//
// The entry target (the library providing the test main) is owned by the
// surrounding build environment, not by testreg. Registration only needs to
// know that one of the well-known entry targets exists and which one.
package framework

import (
	"strings"

	"github.com/AndreyAkinshin/testreg/internal/errors"
)

// DefaultEntryCandidates lists well-known entry target names, probed in order.
var DefaultEntryCandidates = []string{"gtest_main", "gtest", "unity", "cmocka"}

// EntryResolver resolves the test-framework entry target name.
type EntryResolver interface {
	// Resolve returns the name of the available entry target, or a
	// missing-dependency error if none of the known variants exists.
	Resolve() (string, error)
}

// ProbeFunc reports whether a named build unit exists in the external environment.
type ProbeFunc func(name string) bool

// ProbeResolver resolves the entry target by probing an enumerated candidate
// list against an injected existence probe. Adding support for a new test
// framework means adding its entry target name to the candidate list.
type ProbeResolver struct {
	candidates []string
	probe      ProbeFunc
}

// NewProbeResolver creates a resolver over the given candidates.
// An empty candidate list falls back to DefaultEntryCandidates.
func NewProbeResolver(candidates []string, probe ProbeFunc) *ProbeResolver {
	if len(candidates) == 0 {
		candidates = DefaultEntryCandidates
	}
	return &ProbeResolver{candidates: candidates, probe: probe}
}

// Resolve probes each candidate in order and returns the first that exists.
func (r *ProbeResolver) Resolve() (string, error) {
	for _, name := range r.candidates {
		if r.probe(name) {
			return name, nil
		}
	}
	return "", errors.MissingDependency(
		"test framework main entry point not found (tried: " + strings.Join(r.candidates, ", ") + ")")
}

// Package registry stores build targets and their dependency edges.
package registry

// Kind represents the kind of build target.
type Kind string

const (
	// KindExecutable represents a compiled test executable target.
	KindExecutable Kind = "executable"
	// KindAggregate represents a grouping target with no content of its own.
	KindAggregate Kind = "aggregate"
	// KindRunWrapper represents a synthetic target that executes a test
	// executable and reports success regardless of its exit status.
	KindRunWrapper Kind = "run-wrapper"
)

// Target is a node in the dependency graph.
type Target struct {
	name      string
	kind      Kind
	dependsOn []string

	// Executable payload.
	SourceFile string // Single source file implied by the target name
	OutputPath string // Compiled artifact path
	EntryPoint string // Resolved test-framework entry target (externally owned)

	// Run-wrapper payload.
	Wraps       string // Name of the wrapped executable target
	ResultsPath string // Where the wrapped executable writes structured results
}

// Name returns the unique target name.
func (t *Target) Name() string {
	return t.name
}

// Kind returns the target kind.
func (t *Target) Kind() Kind {
	return t.kind
}

// DependsOn returns the target's dependency names in insertion order.
func (t *Target) DependsOn() []string {
	deps := make([]string, len(t.dependsOn))
	copy(deps, t.dependsOn)
	return deps
}

func (t *Target) hasDependency(name string) bool {
	for _, dep := range t.dependsOn {
		if dep == name {
			return true
		}
	}
	return false
}

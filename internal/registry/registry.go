package registry

import (
	"sort"

	"github.com/AndreyAkinshin/testreg/internal/errors"
	"github.com/AndreyAkinshin/testreg/internal/graph"
)

// Registry manages the collection of targets and their dependency edges.
//
// The registry assumes a single-threaded registration phase: all mutation
// happens during configuration, before any target is executed, so there is
// no internal locking.
type Registry struct {
	targets map[string]*Target
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		targets: make(map[string]*Target),
	}
}

// Exists reports whether a target with the given name was previously created.
func (r *Registry) Exists(name string) bool {
	_, ok := r.targets[name]
	return ok
}

// Get retrieves a target by name.
func (r *Registry) Get(name string) (*Target, bool) {
	t, ok := r.targets[name]
	return t, ok
}

// Create adds a new target. Returns a duplicate error if the name is taken.
func (r *Registry) Create(name string, kind Kind) (*Target, error) {
	if r.Exists(name) {
		return nil, errors.Duplicate(name)
	}
	t := &Target{name: name, kind: kind}
	r.targets[name] = t
	return t, nil
}

// AddDependency records that target name depends on dependsOn.
// Both endpoints must exist, and the edge must not close a cycle.
// Adding an edge that is already present is a no-op.
func (r *Registry) AddDependency(name, dependsOn string) error {
	t, ok := r.targets[name]
	if !ok {
		return errors.UnknownTarget(name)
	}
	if !r.Exists(dependsOn) {
		return errors.UnknownTarget(dependsOn)
	}
	if t.hasDependency(dependsOn) {
		return nil
	}
	if graph.WouldCycle(r.buildGraph(), name, dependsOn) {
		return errors.Cycle(name, dependsOn)
	}
	t.dependsOn = append(t.dependsOn, dependsOn)
	return nil
}

// All returns all targets sorted by name.
func (r *Registry) All() []*Target {
	targets := make([]*Target, 0, len(r.targets))
	for _, t := range r.targets {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Name() < targets[j].Name()
	})
	return targets
}

// ByKind returns targets of a specific kind sorted by name.
func (r *Registry) ByKind(kind Kind) []*Target {
	var targets []*Target
	for _, t := range r.targets {
		if t.Kind() == kind {
			targets = append(targets, t)
		}
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Name() < targets[j].Name()
	})
	return targets
}

// Names returns all target names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.targets)
}

// buildGraph creates a graph.Graph from the registry.
func (r *Registry) buildGraph() graph.Graph {
	g := make(graph.Graph, len(r.targets))
	for name, t := range r.targets {
		g[name] = t.dependsOn
	}
	return g
}

// Validate checks the whole graph for self-references, undefined
// dependencies, and cycles. These cannot be introduced through Create and
// AddDependency; execution layers still check before walking.
func (r *Registry) Validate() error {
	if err := graph.Validate(r.buildGraph()); err != nil {
		return errors.Wrap(err, "invalid target graph")
	}
	return nil
}

// TopologicalOrder returns targets in dependency order.
// When roots is non-nil, only the roots and their transitive dependencies
// are included.
func (r *Registry) TopologicalOrder(roots []string) ([]*Target, error) {
	sortedNames, err := graph.Sort(r.buildGraph(), roots)
	if err != nil {
		return nil, errors.Wrap(err, "invalid target graph")
	}

	result := make([]*Target, len(sortedNames))
	for i, name := range sortedNames {
		result[i] = r.targets[name]
	}
	return result, nil
}

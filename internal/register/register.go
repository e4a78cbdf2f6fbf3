// Package register wires test executables into the shared aggregate targets.
//
// Registering a test creates its executable target and a run-wrapper target,
// then adds the executable to build-all-tests and the wrapper to
// run-all-tests. The wrapper's completion status is success regardless of the
// test binary's real exit status: a failing suite records its failures in the
// emitted result file instead of aborting the aggregate run for the other
// suites. Do not "fix" this by propagating the exit status.
package register

import (
	"path/filepath"

	"github.com/AndreyAkinshin/testreg/internal/errors"
	"github.com/AndreyAkinshin/testreg/internal/framework"
	"github.com/AndreyAkinshin/testreg/internal/registry"
	"github.com/AndreyAkinshin/testreg/internal/unit"
)

// BinDirName is the directory under the build root where compiled test
// executables are placed.
const BinDirName = "bin"

// Options carries project-level settings for the orchestrator.
type Options struct {
	ProjectName string // Used in the results path
	BuildRoot   string // Root directory for binaries and results
	SourceExt   string // Test source extension (1:1 test name to source file)
}

// Orchestrator is the public entry point of the registration system.
// All calls must happen on a single goroutine during the configuration phase.
type Orchestrator struct {
	registry   *registry.Registry
	aggregates *Aggregates
	resolver   framework.EntryResolver
	opts       Options
}

// New creates an orchestrator over the given registry and entry resolver.
func New(reg *registry.Registry, resolver framework.EntryResolver, opts Options) *Orchestrator {
	return &Orchestrator{
		registry:   reg,
		aggregates: NewAggregates(reg),
		resolver:   resolver,
		opts:       opts,
	}
}

// Registry returns the registry the orchestrator mutates.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// RegisterTest registers one test executable and wires it into the aggregates.
//
// Validation happens before any mutation: a failed call leaves the registry
// exactly as it was. The framework entry point is re-resolved on every call
// rather than cached; the external environment could change between calls.
func (o *Orchestrator) RegisterTest(testName string) error {
	desc, err := unit.New(testName, o.opts.ProjectName, o.opts.BuildRoot, o.opts.SourceExt)
	if err != nil {
		return err
	}

	entry, err := o.resolver.Resolve()
	if err != nil {
		return err
	}

	wrapperName := unit.WrapperName(desc.Name)
	if o.registry.Exists(desc.Name) {
		return errors.Duplicate(desc.Name)
	}
	if o.registry.Exists(wrapperName) {
		return errors.Duplicate(wrapperName)
	}

	// All checks passed; creations and edges below cannot fail through the
	// public API.
	exe, err := o.registry.Create(desc.Name, registry.KindExecutable)
	if err != nil {
		return err
	}
	exe.SourceFile = desc.SourceFile
	exe.OutputPath = filepath.Join(o.opts.BuildRoot, BinDirName, desc.Name)
	exe.EntryPoint = entry

	wrapper, err := o.registry.Create(wrapperName, registry.KindRunWrapper)
	if err != nil {
		return err
	}
	wrapper.Wraps = desc.Name
	wrapper.ResultsPath = desc.ResultsPath
	if err := o.registry.AddDependency(wrapperName, desc.Name); err != nil {
		return err
	}

	if _, err := o.aggregates.Ensure(AggregateBuild); err != nil {
		return err
	}
	if _, err := o.aggregates.Ensure(AggregateRun); err != nil {
		return err
	}

	if err := o.registry.AddDependency(AggregateBuild, desc.Name); err != nil {
		return err
	}
	return o.registry.AddDependency(AggregateRun, wrapperName)
}

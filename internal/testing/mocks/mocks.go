// Package mocks provides shared test doubles for testreg packages.
package mocks

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/AndreyAkinshin/testreg/internal/runner"
)

// Resolver implements framework.EntryResolver for testing.
// Use NewResolver() to create instances with a fluent builder API.
type Resolver struct {
	entry string
	err   error

	mu    sync.Mutex
	calls int
}

// NewResolver creates a resolver that always resolves to entry.
func NewResolver(entry string) *Resolver {
	return &Resolver{entry: entry}
}

// WithError makes the resolver fail with err instead of resolving.
func (m *Resolver) WithError(err error) *Resolver {
	m.err = err
	return m
}

// Resolve returns the configured entry name or error.
func (m *Resolver) Resolve() (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.entry, nil
}

// Calls returns how many times Resolve was invoked.
func (m *Resolver) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Compiler implements runner.Compiler for testing.
type Compiler struct {
	// CompileFunc is called by Compile. If nil, Compile returns nil.
	CompileFunc func(ctx context.Context, src, out string) error

	mu       sync.Mutex
	compiled []string
}

// NewCompiler creates a compiler that records compiled sources and succeeds.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// WithFunc sets the function invoked by Compile.
func (m *Compiler) WithFunc(fn func(ctx context.Context, src, out string) error) *Compiler {
	m.CompileFunc = fn
	return m
}

// Compile records the source and delegates to CompileFunc if set.
func (m *Compiler) Compile(ctx context.Context, src, out string) error {
	m.mu.Lock()
	m.compiled = append(m.compiled, src)
	m.mu.Unlock()
	if m.CompileFunc != nil {
		return m.CompileFunc(ctx, src, out)
	}
	return nil
}

// Compiled returns the sources passed to Compile, in call order.
func (m *Compiler) Compiled() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.compiled))
	copy(out, m.compiled)
	return out
}

// ExecCall records one invocation of Execer.Run.
type ExecCall struct {
	Path string
	Args []string
}

// Execer implements runner.Execer for testing.
// Exit codes are scripted per executable path; unscripted paths exit 0.
type Execer struct {
	exitCodes  map[string]int
	stderr     map[string]string
	resultXML  map[string]string
	resultFlag string

	mu    sync.Mutex
	calls []ExecCall
}

// NewExecer creates an execer where every run exits 0.
func NewExecer() *Execer {
	return &Execer{
		exitCodes: make(map[string]int),
		stderr:    make(map[string]string),
		resultXML: make(map[string]string),
	}
}

// WithExitCode scripts the exit code for runs of the given path.
func (m *Execer) WithExitCode(path string, code int) *Execer {
	m.exitCodes[path] = code
	return m
}

// WithStderr scripts stderr output for runs of the given path.
func (m *Execer) WithStderr(path, text string) *Execer {
	m.stderr[path] = text
	return m
}

// WithResultFile makes runs of the given path write xmlContent to the
// results path found in the arguments. flag is the result-output prefix
// used to recognize that argument (e.g. "--gtest_output=xml:").
func (m *Execer) WithResultFile(flag, path, xmlContent string) *Execer {
	m.resultFlag = flag
	m.resultXML[path] = xmlContent
	return m
}

// Run records the call and returns the scripted result.
func (m *Execer) Run(ctx context.Context, path string, args []string) runner.ExecResult {
	m.mu.Lock()
	m.calls = append(m.calls, ExecCall{Path: path, Args: append([]string(nil), args...)})
	m.mu.Unlock()

	if xmlContent, ok := m.resultXML[path]; ok {
		for _, arg := range args {
			if m.resultFlag != "" && strings.HasPrefix(arg, m.resultFlag) {
				_ = os.WriteFile(strings.TrimPrefix(arg, m.resultFlag), []byte(xmlContent), 0644)
			}
		}
	}

	return runner.ExecResult{
		ExitCode: m.exitCodes[path],
		Stderr:   m.stderr[path],
	}
}

// Calls returns all recorded invocations in call order.
func (m *Execer) Calls() []ExecCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ExecCall, len(m.calls))
	copy(out, m.calls)
	return out
}

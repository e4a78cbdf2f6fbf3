package runner

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/AndreyAkinshin/testreg/internal/errors"
)

// ExecResult contains the result of executing a test binary.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Compiler produces a runnable artifact from a single source file.
// Compilation itself is an external concern; testreg only invokes it.
type Compiler interface {
	Compile(ctx context.Context, src, out string) error
}

// Execer runs a compiled artifact. The exit status is reported back in the
// result, never as an error: run-wrappers deliberately discard it.
type Execer interface {
	Run(ctx context.Context, path string, args []string) ExecResult
}

// CommandCompiler invokes an external compile command built from a template.
// The template must contain the {src} and {out} placeholders, e.g.
// "cc -o {out} {src}".
type CommandCompiler struct {
	Template string
}

// Compile expands the template and runs it through the system shell.
func (c *CommandCompiler) Compile(ctx context.Context, src, out string) error {
	cmdline := strings.ReplaceAll(c.Template, "{src}", src)
	cmdline = strings.ReplaceAll(cmdline, "{out}", out)

	cmd := shellCommand(ctx, cmdline)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return errors.Wrap(err, "compile "+src+": "+msg)
	}
	return nil
}

// shellCommand builds a command that runs cmdline through the system shell.
func shellCommand(ctx context.Context, cmdline string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", cmdline)
	}
	return exec.CommandContext(ctx, "sh", "-c", cmdline)
}

// processExecer runs binaries as child processes.
type processExecer struct{}

// NewProcessExecer returns an Execer backed by os/exec.
func NewProcessExecer() Execer {
	return processExecer{}
}

// Run executes the binary and captures its output. A binary that cannot be
// started at all is reported as exit code -1 with the error on stderr.
func (processExecer) Run(ctx context.Context, path string, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch e := err.(type) {
	case nil:
		result.ExitCode = 0
	case *exec.ExitError:
		result.ExitCode = e.ExitCode()
	default:
		result.ExitCode = -1
		if result.Stderr == "" {
			result.Stderr = err.Error()
		}
	}
	return result
}

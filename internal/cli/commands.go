package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/testreg/internal/config"
	"github.com/AndreyAkinshin/testreg/internal/errors"
	"github.com/AndreyAkinshin/testreg/internal/framework"
	"github.com/AndreyAkinshin/testreg/internal/output"
	"github.com/AndreyAkinshin/testreg/internal/project"
	"github.com/AndreyAkinshin/testreg/internal/register"
	"github.com/AndreyAkinshin/testreg/internal/registry"
	"github.com/AndreyAkinshin/testreg/internal/results"
	"github.com/AndreyAkinshin/testreg/internal/runner"
	"github.com/AndreyAkinshin/testreg/internal/unit"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// probeFunc checks framework entry availability; replaced in tests.
var probeFunc framework.ProbeFunc = framework.SystemProbe

// Help text alignment widths for consistent formatting.
const (
	widthCommand = 18 // Width for command names like "register <name>..."
	widthFlag    = 14 // Width for flags like "-p, --parallel"
	widthEnvVar  = 20 // Width for env vars like "TESTREG_PARALLEL=<n>"
)

// workspace bundles everything a command needs after the manifest is loaded
// and the manifest's tests are registered.
type workspace struct {
	root string
	cfg  *config.Config
	orch *register.Orchestrator
}

// loadWorkspace locates the project root, loads and validates the manifest,
// and registers every test the manifest lists. Returns the workspace and exit
// code 0 on success, or nil and the appropriate exit code on failure.
func loadWorkspace(opts *GlobalOptions) (*workspace, int) {
	if opts.Chdir != "" {
		if err := os.Chdir(opts.Chdir); err != nil {
			out.ErrorPrefix("cannot change directory: %v", err)
			return nil, errors.ExitConfigError
		}
	}

	root, err := project.FindRoot()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.ExitConfigError
	}

	cfg, warnings, err := config.LoadAndValidate(project.ManifestPath(root))
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.GetExitCode(err)
	}
	for _, warning := range warnings {
		out.WarningSimple("%s", warning)
	}

	orch := newOrchestrator(root, cfg)
	for _, testName := range cfg.Tests {
		if err := orch.RegisterTest(testName); err != nil {
			out.ErrorPrefix("%v", err)
			return nil, errors.GetExitCode(err)
		}
	}

	return &workspace{root: root, cfg: cfg, orch: orch}, 0
}

func newOrchestrator(root string, cfg *config.Config) *register.Orchestrator {
	resolver := framework.NewProbeResolver(cfg.Framework.EntryCandidates, probeFunc)
	return register.New(registry.New(), resolver, register.Options{
		ProjectName: cfg.Project.Name,
		BuildRoot:   filepath.Join(root, cfg.Build.Root),
		SourceExt:   cfg.Build.SourceExt,
	})
}

func newRunner(ws *workspace) *runner.Runner {
	compiler := &runner.CommandCompiler{Template: ws.cfg.Build.Compiler}
	return runner.New(ws.orch.Registry(), compiler, runner.NewProcessExecer(), ws.cfg.Framework.ResultFlag)
}

// cmdRegister registers additional test targets given on the command line,
// on top of the tests the manifest lists.
func cmdRegister(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printRegisterUsage()
		return 0
	}
	if len(args) == 0 {
		out.ErrorPrefix("register requires at least one test name")
		out.Errorln("Run 'testreg register --help' for usage.")
		return errors.ExitConfigError
	}

	ws, code := loadWorkspace(opts)
	if ws == nil {
		return code
	}

	for _, name := range args {
		if err := ws.orch.RegisterTest(name); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
		out.Success("registered %s", name)
	}

	out.Info("%d targets in registry", ws.orch.Registry().Len())
	return errors.ExitSuccess
}

// cmdGraph prints the registered targets and their dependency edges.
func cmdGraph(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printGraphUsage()
		return 0
	}

	ws, code := loadWorkspace(opts)
	if ws == nil {
		return code
	}

	reg := ws.orch.Registry()
	if reg.Len() == 0 {
		out.Info("no targets registered")
		return errors.ExitSuccess
	}

	rows := make([][]string, 0, reg.Len())
	for _, t := range reg.All() {
		rows = append(rows, []string{t.Name(), string(t.Kind()), strings.Join(t.DependsOn(), ", ")})
	}
	out.Table([]string{"TARGET", "KIND", "DEPENDS ON"}, rows)
	return errors.ExitSuccess
}

// cmdBuild compiles every registered test executable.
func cmdBuild(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printAggregateUsage("build")
		return 0
	}

	ws, code := loadWorkspace(opts)
	if ws == nil {
		return code
	}
	if len(ws.cfg.Tests) == 0 {
		out.Info("no tests registered; nothing to build")
		return errors.ExitSuccess
	}

	r := newRunner(ws)
	runnerOpts := runner.Options{Parallel: opts.Parallel, Continue: opts.Continue}
	if err := r.BuildAll(context.Background(), runnerOpts); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	out.FinalSuccess("built %d tests", len(ws.cfg.Tests))
	return errors.ExitSuccess
}

// cmdRun builds and then executes every run-wrapper, printing a result
// summary. Individual test failures are reported through the summary, not
// through the exit code; only infrastructure failures are fatal here.
func cmdRun(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printAggregateUsage("run")
		return 0
	}

	ws, code := loadWorkspace(opts)
	if ws == nil {
		return code
	}
	if len(ws.cfg.Tests) == 0 {
		out.Info("no tests registered; nothing to run")
		return errors.ExitSuccess
	}

	r := newRunner(ws)
	runnerOpts := runner.Options{Parallel: opts.Parallel, Continue: opts.Continue}
	if err := r.BuildAll(context.Background(), runnerOpts); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	summary, err := r.RunAll(context.Background(), runnerOpts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	printRunSummary(summary)
	return errors.ExitSuccess
}

// cmdSummary aggregates previously recorded result files without running
// anything.
func cmdSummary(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printSummaryUsage()
		return 0
	}

	ws, code := loadWorkspace(opts)
	if ws == nil {
		return code
	}

	resultsDir := filepath.Join(ws.root, ws.cfg.Build.Root, unit.ResultsDirName, ws.cfg.Project.Name)
	counts, err := results.CollectDir(resultsDir)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	printCounts(counts)
	return errors.ExitSuccess
}

func printRunSummary(summary *results.RunSummary) {
	out.SummaryHeader("Test Run Summary")
	for _, res := range summary.Results {
		status := "ok"
		if res.ExitCode != 0 {
			status = fmt.Sprintf("exit %d", res.ExitCode)
		}
		out.SummaryItem(res.Name, fmt.Sprintf("%-8s %s", status, res.Duration.Round(time.Millisecond)))
	}
	out.SummaryItem("total time", summary.TotalDuration.Round(time.Millisecond).String())

	printCounts(summary.Counts())

	if failed := summary.FailedRuns(); len(failed) > 0 {
		out.Section("Wrappers with non-zero test exit")
		out.List(failed)
	}
}

func printCounts(counts results.TestCounts) {
	if !counts.Parsed {
		out.Info("no result files found")
		return
	}

	out.SummaryHeader("Test Results")
	out.SummaryPassed("passed", fmt.Sprintf("%d", counts.Passed))
	if counts.Failed > 0 {
		out.SummaryFailed("failed", fmt.Sprintf("%d", counts.Failed))
	}
	if counts.Skipped > 0 {
		out.SummaryItem("skipped", fmt.Sprintf("%d", counts.Skipped))
	}
	out.SummaryItem("total", fmt.Sprintf("%d", counts.Total))

	for _, ft := range counts.FailedTests {
		if ft.Reason != "" {
			out.Error("  %s: %s\n", ft.Name, ft.Reason)
		} else {
			out.Error("  %s\n", ft.Name)
		}
	}

	if counts.Failed > 0 {
		out.FinalFailure("%d of %d tests failed", counts.Failed, counts.Total)
	} else {
		out.FinalSuccess("all %d tests passed", counts.Total)
	}
}

// printRegisterUsage prints the help text for the register command.
func printRegisterUsage() {
	w := output.New()

	w.HelpTitle("testreg register - register additional test targets")

	w.HelpSection("Usage:")
	w.HelpUsage("testreg register <name>... [options]")

	w.HelpSection("Description:")
	w.Println("  Registers each named test on top of the tests the manifest lists.")
	w.Println("  Each test gets an executable target, a run-wrapper target, and")
	w.Println("  membership in the %s and %s aggregates.", register.AggregateBuild, register.AggregateRun)

	w.HelpSection("Arguments:")
	w.HelpFlag("<name>...", "Test names (C identifiers, one source file each)", widthFlag)

	w.HelpSection("Examples:")
	w.HelpExample("testreg register parser_test", "Register one test")
	w.HelpExample("testreg register lexer_test ast_test", "Register two tests")
	w.Println("")
}

// printGraphUsage prints the help text for the graph command.
func printGraphUsage() {
	w := output.New()

	w.HelpTitle("testreg graph - show the registered target graph")

	w.HelpSection("Usage:")
	w.HelpUsage("testreg graph [options]")

	w.HelpSection("Description:")
	w.Println("  Registers the manifest's tests and prints every target with its")
	w.Println("  kind and dependency edges.")

	w.HelpSection("Examples:")
	w.HelpExample("testreg graph", "Show targets and edges")
	w.Println("")
}

// printAggregateUsage prints the help text for the build and run commands.
func printAggregateUsage(cmd string) {
	w := output.New()

	aggregate := register.AggregateBuild
	desc := "compile every registered test"
	if cmd == "run" {
		aggregate = register.AggregateRun
		desc = "run every test and collect results"
	}

	w.HelpTitle(fmt.Sprintf("testreg %s - %s", cmd, desc))

	w.HelpSection("Usage:")
	w.HelpUsage(fmt.Sprintf("testreg %s [options]", cmd))

	w.HelpSection("Description:")
	w.Println("  Executes the %s aggregate over the manifest's tests.", aggregate)
	if cmd == "run" {
		w.Println("  Test failures are recorded in the result files and the summary;")
		w.Println("  the aggregate itself always completes.")
	}

	w.HelpSection("Global Options:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", widthFlag)
	w.HelpFlag("-p, --parallel", "Bounded concurrent execution", widthFlag)
	w.HelpFlag("--continue", "Keep building after a compile failure", widthFlag)
	w.HelpFlag("-h, --help", "Show this help", widthFlag)

	w.HelpSection("Examples:")
	titleCase := cases.Title(language.English)
	w.HelpExample(fmt.Sprintf("testreg %s", cmd), fmt.Sprintf("%s all tests", titleCase.String(cmd)))
	w.HelpExample(fmt.Sprintf("testreg %s --parallel", cmd), fmt.Sprintf("%s all tests concurrently", titleCase.String(cmd)))
	w.Println("")
}

// printSummaryUsage prints the help text for the summary command.
func printSummaryUsage() {
	w := output.New()

	w.HelpTitle("testreg summary - summarize recorded test results")

	w.HelpSection("Usage:")
	w.HelpUsage("testreg summary [options]")

	w.HelpSection("Description:")
	w.Println("  Parses the XML result files a previous run recorded and prints")
	w.Println("  aggregate pass/fail counts. Does not build or run anything.")

	w.HelpSection("Examples:")
	w.HelpExample("testreg summary", "Summarize the latest results")
	w.Println("")
}

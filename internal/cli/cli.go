// Package cli provides command-line interface functionality for testreg.
package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/testreg/internal/errors"
	"github.com/AndreyAkinshin/testreg/internal/output"
)

// Version is set at build time.
var Version = "dev"

// wantsHelp returns true if args contain -h or --help before any -- separator.
// Arguments after -- are passed through to commands, so help flags there are ignored.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		fmt.Printf("testreg %s\n", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	// Re-extract command after flag parsing
	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "register":
		return cmdRegister(cmdArgs, opts)
	case "graph":
		return cmdGraph(cmdArgs, opts)
	case "build":
		return cmdBuild(cmdArgs, opts)
	case "run":
		return cmdRun(cmdArgs, opts)
	case "summary":
		return cmdSummary(cmdArgs, opts)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Errorln("Run 'testreg --help' for usage.")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet    bool
	Parallel bool
	Continue bool
	Chdir    string
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of stdlib flag package because:
// - Flags can appear anywhere in the argument list, not just before the command
// - Pass-through arguments after -- must be preserved verbatim
// - Custom error messages with usage hints are needed
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-p" || arg == "--parallel":
			opts.Parallel = true
			i++
		case arg == "--continue":
			opts.Continue = true
			i++
		case arg == "-C":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("-C requires a directory")
			}
			opts.Chdir = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "-C="):
			opts.Chdir = strings.TrimPrefix(arg, "-C=")
			i++
		case arg == "--":
			// Everything after -- is passed through
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	out.SetQuiet(opts.Quiet)

	return opts, remaining, nil
}

func printUsage() {
	w := output.New()

	w.HelpTitle("testreg - native test target registration and execution")

	w.HelpSection("Usage:")
	w.HelpUsage("testreg <command> [args]")

	w.HelpSection("Commands:")
	w.HelpCommand("register <name>...", "Register additional test targets", widthCommand)
	w.HelpCommand("graph", "Show the registered target graph", widthCommand)
	w.HelpCommand("build", "Compile every registered test", widthCommand)
	w.HelpCommand("run", "Run every test and collect results", widthCommand)
	w.HelpCommand("summary", "Summarize recorded test results", widthCommand)
	w.HelpCommand("version", "Show version information", widthCommand)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("testreg build", "Build all registered tests")
	w.HelpExample("testreg run --parallel", "Run all tests concurrently")
	w.HelpExample("testreg register parser_test", "Register one extra test")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", widthFlag)
	w.HelpFlag("-p, --parallel", "Bounded concurrent execution", widthFlag)
	w.HelpFlag("--continue", "Keep building after a compile failure", widthFlag)
	w.HelpFlag("-C <dir>", "Change to directory before loading the manifest", widthFlag)
	w.HelpFlag("-h, --help", "Show this help", widthFlag)
	w.HelpFlag("--version", "Show version", widthFlag)

	w.HelpSection("Environment:")
	w.HelpEnvVar("TESTREG_PARALLEL=<n>", "Worker count for --parallel (1-256)", widthEnvVar)
}

package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/phantombuild/internal/app"
	"github.com/vk/phantombuild/internal/phantom"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects the values of a repeatable string flag in the order
// they were given.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("phantombuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
phantombuild - compile Phantom and set up calculation runs.

Usage:
  phantombuild [options]
  phantombuild [options] PLAN_PATH

Arguments:
  PLAN_PATH
    Path to an HCL plan file declaring the phantom block and run blocks.
    A plan file replaces the --run-* and --phantom-* options below.

Options:
`)
		flagSet.PrintDefaults()
	}

	var runDirs, setupFiles, inFiles, patches stringList

	prefixFlag := flagSet.String("run-prefix", "", "Prefix for run output, e.g. prefix_00000.h5.")
	flagSet.Var(&runDirs, "run-dir", "Path to a run directory. Repeat for multiple runs.")
	flagSet.Var(&setupFiles, "run-setup-file", "Path to a Phantom .setup file. Repeat, one per run.")
	flagSet.Var(&inFiles, "run-in-file", "Path to a Phantom .in file. Repeat, one per run.")
	jobScriptFlag := flagSet.String("run-job-script", "", "Path to a Slurm job script to schedule each run.")
	setupFlag := flagSet.String("phantom-setup", "", "Phantom Makefile SETUP variable, e.g. disc or shock.")
	systemFlag := flagSet.String("phantom-system", "", "Phantom Makefile SYSTEM variable, e.g. gfortran or ifort.")
	extraFlagsFlag := flagSet.String("phantom-extra-flags", "", "Additional Makefile flags as a comma-separated list, e.g. ISOTHERMAL=yes,DUST=yes.")
	phantomDirFlag := flagSet.String("phantom-dir", "", "Path to the Phantom source tree. Defaults to ./phantom.")
	versionFlag := flagSet.String("phantom-version", "", "Required Phantom version as a git commit hash.")
	flagSet.Var(&patches, "phantom-patch", "Path to a patch file. Repeat to apply several, in order.")
	hdf5DirFlag := flagSet.String("phantom-hdf5-dir", "", "HDF5 installation directory; enables the HDF5 build.")
	logFileFlag := flagSet.String("log-file", app.DefaultLogFile, "Path to the persistent append log.")
	logFormatFlag := flagSet.String("log-format", "text", "Console log format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	planPath := ""
	if flagSet.NArg() > 0 {
		if flagSet.NArg() > 1 {
			return nil, false, &ExitError{Code: 2, Message: "at most one PLAN_PATH argument is allowed"}
		}
		planPath = flagSet.Arg(0)
	}

	// Bare invocation prints usage and exits cleanly. Anything else with
	// missing required options falls through to validation below.
	if len(args) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	if planPath != "" && (*prefixFlag != "" || len(runDirs) > 0 || len(setupFiles) > 0 ||
		len(inFiles) > 0 || *jobScriptFlag != "" || *setupFlag != "" || *systemFlag != "" ||
		*extraFlagsFlag != "" || *phantomDirFlag != "" || *versionFlag != "" ||
		len(patches) > 0 || *hdf5DirFlag != "") {
		return nil, false, &ExitError{Code: 2, Message: "a plan file and --run-*/--phantom-* options are mutually exclusive"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	extraFlags, err := phantom.ParseMakeOptions(*extraFlagsFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	config, err := app.NewConfig(app.Config{
		PlanPath:        planPath,
		Prefix:          *prefixFlag,
		RunDirs:         runDirs,
		SetupFiles:      setupFiles,
		InFiles:         inFiles,
		JobScript:       *jobScriptFlag,
		PhantomDir:      *phantomDirFlag,
		Version:         *versionFlag,
		Patches:         patches,
		Setup:           *setupFlag,
		System:          *systemFlag,
		ExtraFlags:      extraFlags,
		HDF5Dir:         *hdf5DirFlag,
		LogFile:         *logFileFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply. --workers 0 reads the result.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	// Variables already set in the process environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: ignoring .env: %v\n", err)
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args to a command and returns the process exit code.
// Anything that is not a command name is handed to convert.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) > 0 {
		switch args[0] {
		case cmdVersion:
			fmt.Fprintf(env.Stdout, "go-docprep %s\n", Version)
			return ExitSuccess
		case cmdHelp:
			return runHelp(args[1:], env)
		case cmdPreview:
			return reportError(runPreview(ctx, args[1:], env), env)
		case cmdCompletion:
			return reportError(runCompletion(args[1:], env), env)
		case cmdConvert:
			args = args[1:]
		}
	}
	return reportError(runConvert(ctx, args, env), env)
}

// reportError prints err with its hints and maps it to an exit code.
func reportError(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintsFor(err))
	return exitCodeFor(err)
}

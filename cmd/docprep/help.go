package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep [convert] [flags] <source_dir> <output_dir>")
	fmt.Fprintln(w, "       docprep <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Preprocess a directory of Markdown files (default)")
	fmt.Fprintln(w, "  preview    Render one Markdown file to a standalone HTML page")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate a shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docprep help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep [convert] [flags] <source_dir> <output_dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preprocess every .md file directly inside source_dir into output_dir.")
	fmt.Fprintln(w, "Remote images are downloaded to output_dir/_static/laravel/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source_dir    Directory of Markdown files (or input.defaultDir)")
	fmt.Fprintln(w, "  output_dir    Destination directory (or output.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Processing:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = one per CPU, default 1)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-image download timeout (default 10s)")
	fmt.Fprintln(w, "      --skip <stages>       Skip stages: images,links,diff,php-tags,tabs")
	fmt.Fprintln(w, "      --asset-prefix <p>    Image directory inside output_dir")
	fmt.Fprintln(w, "      --check-links         Report links to documents missing from the output")
	fmt.Fprintln(w, "      --watch               Reprocess source files as they change")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep preview [flags] <file.md>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a processed Markdown file to a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: input with .html)")
	fmt.Fprintln(w, "  -p, --profile <name>      Profile: color, grayscale (default color)")
	fmt.Fprintln(w, "      --style <name>        Code highlight style, overrides the profile's")
	fmt.Fprintln(w, "      --assets-dir <dir>    Directory overriding the embedded CSS and template")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timings")
	fmt.Fprintln(w, "      --log-format <f>      Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCPREP_CONFIG, DOCPREP_INPUT_DIR, DOCPREP_OUTPUT_DIR, DOCPREP_TIMEOUT,")
	fmt.Fprintln(w, "  DOCPREP_WORKERS, DOCPREP_PROFILE, DOCPREP_LOG_FORMAT")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdPreview:
		printPreviewUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: docprep version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: docprep help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

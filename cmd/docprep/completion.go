package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docprep/internal/highlight"
	"github.com/alnah/go-docprep/internal/pipeline"
	"github.com/alnah/go-docprep/internal/render"
)

// Shell is a shell completion scripts can be generated for.
type Shell string

// Supported shells.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned for a shell without a completion script.
var ErrUnsupportedShell = errors.New("unsupported shell")

// supportedShells lists the shells in the order usage shows them.
var supportedShells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// flagType is how a flag's value completes.
type flagType int

const (
	flagString flagType = iota // free text, no completion
	flagBool
	flagInt
	flagEnum // one of Values
	flagFile // files matching FileGlobs
	flagDir
)

// flagDef describes a flag for completion.
type flagDef struct {
	Long      string
	Short     string // empty without a shorthand
	Type      flagType
	Desc      string
	Values    []string // flagEnum
	FileGlobs []string // flagFile, empty for any file
}

// takesValue reports whether the flag consumes the next word.
func (f flagDef) takesValue() bool { return f.Type != flagBool }

// argKind is how a command's positional arguments complete.
type argKind int

const (
	argNone argKind = iota
	argDirs
	argMarkdown
	argShells
	argCommands
)

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  argKind
}

// completionMeta holds what a FlagSet cannot say about a flag's value.
type completionMeta struct {
	Values    []string
	FileGlobs []string
	IsDir     bool
	IsFile    bool
}

// flagCompletionMeta maps flag names to their value completion. Names,
// shorthands and descriptions come from the FlagSets.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"skip":       {Values: pipeline.StageNames()},
		"profile":    {Values: render.ProfileNames()},
		"style":      {Values: highlight.StyleNames()},
		"log-format": {Values: []string{"text", "json"}},
		"config":     {FileGlobs: []string{"*.yaml", "*.yml"}, IsFile: true},
		"output":     {FileGlobs: []string{"*.html"}, IsFile: true},
		"assets-dir": {IsDir: true},
	}
}

// extractFlags turns the flags of fs into completion definitions.
func extractFlags(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var defs []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.IsFile:
				fd.Type = flagFile
				fd.FileGlobs = m.FileGlobs
			case m.IsDir:
				fd.Type = flagDir
			}
		}
		defs = append(defs, fd)
	})
	return defs
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	convertSet := newFlagSet(cmdConvert)
	addConvertFlags(convertSet, &convertFlags{})
	previewSet := newFlagSet(cmdPreview)
	addPreviewFlags(previewSet, &previewFlags{})

	return []commandDef{
		{Name: cmdConvert, Desc: "Preprocess a directory of Markdown files", Flags: extractFlags(convertSet), Args: argDirs},
		{Name: cmdPreview, Desc: "Render one Markdown file to an HTML page", Flags: extractFlags(previewSet), Args: argMarkdown},
		{Name: cmdVersion, Desc: "Show version information"},
		{Name: cmdHelp, Desc: "Show help for a command", Args: argCommands},
		{Name: cmdCompletion, Desc: "Generate a shell completion script", Args: argShells},
	}
}

// commandNames returns the names of cmds in order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// shellNames returns the supported shells as strings.
func shellNames() []string {
	names := make([]string, len(supportedShells))
	for i, s := range supportedShells {
		names[i] = string(s)
	}
	return names
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	switch shell {
	case ShellBash:
		return generateBash(w, cmds)
	case ShellZsh:
		return generateZsh(w, cmds)
	case ShellFish:
		return generateFish(w, cmds)
	case ShellPowerShell:
		return generatePowerShell(w, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		printCompletionUsage(env.Stderr)
		return fmt.Errorf("%w: completion takes one shell name, got %d arguments", ErrUnsupportedShell, len(args))
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(docprep completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(docprep completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    docprep completion fish > ~/.config/fish/completions/docprep.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    docprep completion powershell | Out-String | Invoke-Expression")
}

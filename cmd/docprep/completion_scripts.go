package main

import (
	"fmt"
	"io"
	"strings"
)

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	names := commandNames(cmds)
	var b strings.Builder

	b.WriteString("# bash completion for docprep\n\n")
	b.WriteString("_docprep_completions() {\n")
	b.WriteString("    local cur prev cmd i\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"\"\n")
	b.WriteString("    for ((i = 1; i < COMP_CWORD; i++)); do\n")
	b.WriteString("        case \"${COMP_WORDS[i]}\" in\n")
	fmt.Fprintf(&b, "            %s) cmd=\"${COMP_WORDS[i]}\"; break ;;\n", strings.Join(names, "|"))
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		pattern := c.Name
		if c.Name == cmdConvert {
			// convert runs when no command is given
			pattern += "|\"\""
		}
		fmt.Fprintf(&b, "    %s)\n", pattern)
		writeBashCommand(&b, c, names)
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _docprep_completions docprep\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBashCommand(b *strings.Builder, c commandDef, names []string) {
	if len(c.Flags) > 0 {
		b.WriteString("        case \"$prev\" in\n")
		for _, f := range c.Flags {
			if !f.takesValue() {
				continue
			}
			fmt.Fprintf(b, "            %s)\n", strings.Join(flagSpellings(f), "|"))
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(b, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
			case flagFile:
				writeBashFiles(b, f.FileGlobs, "                ")
			case flagDir:
				b.WriteString("                COMPREPLY=($(compgen -d -- \"$cur\"))\n")
			}
			b.WriteString("                return ;;\n")
		}
		b.WriteString("        esac\n")
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(allSpellings(c.Flags), " "))
		b.WriteString("            return\n")
		b.WriteString("        fi\n")
	}

	switch c.Args {
	case argDirs:
		b.WriteString("        COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		if c.Name == cmdConvert {
			b.WriteString("        if [[ -z \"$cmd\" && $COMP_CWORD -eq 1 ]]; then\n")
			fmt.Fprintf(b, "            COMPREPLY+=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
			b.WriteString("        fi\n")
		}
	case argMarkdown:
		writeBashFiles(b, []string{"*.md"}, "        ")
	case argShells:
		fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(shellNames(), " "))
	case argCommands:
		fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	}
}

// writeBashFiles completes directories plus files matching globs.
func writeBashFiles(b *strings.Builder, globs []string, indent string) {
	b.WriteString(indent + "COMPREPLY=($(compgen -d -- \"$cur\"))\n")
	if len(globs) == 0 {
		b.WriteString(indent + "COMPREPLY+=($(compgen -f -- \"$cur\"))\n")
		return
	}
	for _, g := range globs {
		fmt.Fprintf(b, "%sCOMPREPLY+=($(compgen -f -X '!%s' -- \"$cur\"))\n", indent, g)
	}
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer, cmds []commandDef) error {
	names := commandNames(cmds)
	var b strings.Builder

	b.WriteString("#compdef docprep\n\n")
	b.WriteString("_docprep() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    local cmd=\n")
	b.WriteString("    case ${words[2]} in\n")
	fmt.Fprintf(&b, "        %s)\n", strings.Join(names, "|"))
	b.WriteString("            if (( CURRENT > 2 )); then\n")
	b.WriteString("                cmd=${words[2]}\n")
	b.WriteString("                shift words\n")
	b.WriteString("                (( CURRENT-- ))\n")
	b.WriteString("            fi ;;\n")
	b.WriteString("    esac\n\n")

	b.WriteString("    if [[ -z $cmd ]] && (( CURRENT == 2 )) && [[ $PREFIX != -* ]]; then\n")
	b.WriteString("        _describe -t commands 'docprep command' commands\n")
	b.WriteString("        _files -/\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case $cmd in\n")
	for _, c := range cmds {
		if c.Name == cmdConvert {
			continue
		}
		fmt.Fprintf(&b, "        %s) _docprep_%s ;;\n", c.Name, c.Name)
	}
	fmt.Fprintf(&b, "        *) _docprep_%s ;;\n", cmdConvert)
	b.WriteString("    esac\n")
	b.WriteString("}\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "\n_docprep_%s() {\n", c.Name)
		writeZshCommand(&b, c, names)
		b.WriteString("}\n")
	}

	b.WriteString("\nif [ \"$funcstack[1]\" = \"_docprep\" ]; then\n")
	b.WriteString("    _docprep \"$@\"\n")
	b.WriteString("else\n")
	b.WriteString("    compdef _docprep docprep\n")
	b.WriteString("fi\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeZshCommand(b *strings.Builder, c commandDef, names []string) {
	var specs []string
	for _, f := range c.Flags {
		specs = append(specs, zshFlagSpec(f))
	}
	switch c.Args {
	case argDirs:
		specs = append(specs, "'*:directory:_files -/'")
	case argMarkdown:
		specs = append(specs, "'1:markdown file:_files -g \"*.md\"'")
	case argShells:
		specs = append(specs, fmt.Sprintf("'1:shell:(%s)'", strings.Join(shellNames(), " ")))
	case argCommands:
		specs = append(specs, fmt.Sprintf("'1:command:(%s)'", strings.Join(names, " ")))
	}

	if len(specs) == 0 {
		b.WriteString("    return 1\n")
		return
	}
	b.WriteString("    _arguments -s \\\n")
	for i, s := range specs {
		b.WriteString("        " + s)
		if i < len(specs)-1 {
			b.WriteString(" \\")
		}
		b.WriteString("\n")
	}
}

// zshFlagSpec renders one _arguments option spec.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshQuote(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		if len(f.FileGlobs) == 0 {
			action = ":file:_files"
		} else {
			action = fmt.Sprintf(":file:_files -g \"%s\"", strings.Join(f.FileGlobs, " "))
		}
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = fmt.Sprintf(":%s: ", f.Long)
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshQuote escapes s for a single-quoted _arguments description.
func zshQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`, ":", `\:`, "'", `'\''`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer, cmds []commandDef) error {
	names := commandNames(cmds)
	var b strings.Builder

	b.WriteString("# fish completion for docprep\n\n")
	b.WriteString("function __fish_docprep_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")

	b.WriteString("function __fish_docprep_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    if test (count $cmd) -gt 1; and test \"$cmd[2]\" = $argv[1]\n")
	b.WriteString("        return 0\n")
	b.WriteString("    end\n")
	fmt.Fprintf(&b, "    test $argv[1] = %s; and not __fish_seen_subcommand_from %s\n", cmdConvert, strings.Join(names, " "))
	b.WriteString("end\n\n")

	b.WriteString("complete -c docprep -f\n\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c docprep -n __fish_docprep_needs_command -a %s -d '%s'\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_docprep_using_command %s'", c.Name)
		b.WriteString("\n")
		for _, f := range c.Flags {
			b.WriteString(fishFlagLine(cond, f))
		}
		switch c.Args {
		case argDirs:
			fmt.Fprintf(&b, "complete -c docprep -n %s -a '(__fish_complete_directories)'\n", cond)
		case argMarkdown:
			fmt.Fprintf(&b, "complete -c docprep -n %s -a '(__fish_complete_suffix .md)'\n", cond)
		case argShells:
			fmt.Fprintf(&b, "complete -c docprep -n %s -a '%s'\n", cond, strings.Join(shellNames(), " "))
		case argCommands:
			fmt.Fprintf(&b, "complete -c docprep -n %s -a '%s'\n", cond, strings.Join(names, " "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishFlagLine(cond string, f flagDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "complete -c docprep -n %s", cond)
	if f.Short != "" {
		fmt.Fprintf(&b, " -s %s", f.Short)
	}
	fmt.Fprintf(&b, " -l %s", f.Long)

	switch f.Type {
	case flagBool:
	case flagEnum:
		fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
	case flagFile:
		b.WriteString(" -r -F")
	case flagDir:
		b.WriteString(" -x -a '(__fish_complete_directories)'")
	default:
		b.WriteString(" -x")
	}
	fmt.Fprintf(&b, " -d '%s'\n", fishQuote(f.Desc))
	return b.String()
}

// fishQuote escapes s for a single-quoted fish string.
func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(w io.Writer, cmds []commandDef) error {
	names := commandNames(cmds)
	var b strings.Builder

	b.WriteString("# powershell completion for docprep\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName docprep -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	fmt.Fprintf(&b, "    $commands = %s\n", psArray(names))
	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $atCommand = ($elements.Count -eq 1) -or ($elements.Count -eq 2 -and $wordToComplete -ne '')\n")
	fmt.Fprintf(&b, "    $command = '%s'\n", cmdConvert)
	b.WriteString("    if (-not $atCommand -and $commands -contains $elements[1]) {\n")
	b.WriteString("        $command = $elements[1]\n")
	b.WriteString("    }\n")
	b.WriteString("    $prev = ''\n")
	b.WriteString("    if ($wordToComplete -eq '') {\n")
	b.WriteString("        $prev = $elements[-1]\n")
	b.WriteString("    } elseif ($elements.Count -gt 2) {\n")
	b.WriteString("        $prev = $elements[-2]\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $candidates = @()\n")
	b.WriteString("    switch ($command) {\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' {\n", c.Name)
		writePowerShellCommand(&b, c, names)
		b.WriteString("        }\n")
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writePowerShellCommand(b *strings.Builder, c commandDef, names []string) {
	const in = "            "

	if len(c.Flags) > 0 {
		b.WriteString(in + "switch ($prev) {\n")
		for _, f := range c.Flags {
			if !f.takesValue() {
				continue
			}
			for _, spelling := range flagSpellings(f) {
				if f.Type == flagEnum {
					fmt.Fprintf(b, "%s    '%s' { $candidates = %s; break }\n", in, spelling, psArray(f.Values))
					continue
				}
				// Native file completion takes over.
				fmt.Fprintf(b, "%s    '%s' { return }\n", in, spelling)
			}
		}
		b.WriteString(in + "}\n")
		b.WriteString(in + "if ($candidates.Count -eq 0 -and $wordToComplete.StartsWith('-')) {\n")
		fmt.Fprintf(b, "%s    $candidates = %s\n", in, psArray(allSpellings(c.Flags)))
		b.WriteString(in + "}\n")
	}

	switch c.Args {
	case argDirs:
		if c.Name == cmdConvert {
			b.WriteString(in + "if ($candidates.Count -eq 0 -and $atCommand) {\n")
			b.WriteString(in + "    $candidates = $commands\n")
			b.WriteString(in + "}\n")
		}
	case argShells:
		fmt.Fprintf(b, "%sif (-not $atCommand) { $candidates = %s }\n", in, psArray(shellNames()))
	case argCommands:
		b.WriteString(in + "if (-not $atCommand) { $candidates = $commands }\n")
	}
	if c.Args == argNone && len(c.Flags) == 0 {
		b.WriteString(in + "return\n")
	}
}

// psArray renders values as a PowerShell array of single-quoted strings.
func psArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

// ---------------------------------------------------------------------------
// Shared
// ---------------------------------------------------------------------------

// flagSpellings returns -s and --long for f, shorthand first.
func flagSpellings(f flagDef) []string {
	if f.Short == "" {
		return []string{"--" + f.Long}
	}
	return []string{"-" + f.Short, "--" + f.Long}
}

// allSpellings returns the spellings of every flag in flags.
func allSpellings(flags []flagDef) []string {
	var out []string
	for _, f := range flags {
		out = append(out, flagSpellings(f)...)
	}
	return out
}

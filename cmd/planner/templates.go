// Package main is the entry point for the planner application.
// This file contains the templates subcommand handler.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"planner/internal/planner"
)

const templatesHelpText = `planner templates - Manage task templates

USAGE:
    planner templates [list]
    planner templates add [--emoji EMOJI] TEXT...
    planner templates use REF
    planner templates rm REF

COMMANDS:
    list        List the template catalog (default)
    add         Add a template
    use         Add a task for today from a template
    rm          Delete a template

OPTIONS:
    -e, --emoji EMOJI  Emoji of a new template (default: 📝)
    --ids              Show template ids
    -h, --help         Show this help message

ARGUMENTS:
    REF         Number from 'planner templates' or a template id prefix.

EXAMPLES:
    planner templates
    planner templates add --emoji 📚 Read 20 pages
    planner templates use 2
`

// runTemplates handles the "planner templates" subcommand.
func runTemplates(args []string) {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)

	emojiFlag := fs.String("emoji", "", "emoji of a new template")
	fs.StringVar(emojiFlag, "e", "", "emoji (shorthand)")

	idsFlag := fs.Bool("ids", false, "show template ids")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, templatesHelpText)
	}

	// Flags may follow the action: "templates add --emoji 📚 Read".
	action := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		action, args = args[0], args[1:]
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(templatesHelpText)
		os.Exit(0)
	}

	switch action {
	case "list", "ls":
		_, p := openCLI()
		printTemplates(os.Stdout, p, *idsFlag)

	case "add":
		text := strings.Join(fs.Args(), " ")
		if strings.TrimSpace(text) == "" {
			fmt.Fprintln(os.Stderr, "Error: template text is required")
			fmt.Fprintln(os.Stderr, "Usage: planner templates add [--emoji EMOJI] TEXT")
			os.Exit(1)
		}
		_, p := openCLI()
		tpl, err := p.AddTemplate(text, *emojiFlag)
		if err != nil {
			fail("adding template: %v", err)
		}
		checkSaved(p)
		fmt.Printf("✓ Template added: %s\n", taskLabel(tpl.Emoji, tpl.Text))

	case "use", "rm":
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Error: exactly one template reference is required")
			fmt.Fprintf(os.Stderr, "Usage: planner templates %s REF\n", action)
			os.Exit(1)
		}
		_, p := openCLI()
		tpl, err := resolveTemplate(p.Templates(), fs.Arg(0))
		if err != nil {
			fail("%v", err)
		}

		if action == "use" {
			task, err := p.AddFromTemplate(tpl.ID)
			if err != nil {
				fail("adding task: %v", err)
			}
			checkSaved(p)
			fmt.Printf("✓ Added: %s\n", taskLabel(task.Emoji, task.Text))
			printDaySummary(os.Stdout, p, task.Date)
			return
		}

		if err := p.DeleteTemplate(tpl.ID); err != nil {
			fail("deleting template: %v", err)
		}
		checkSaved(p)
		fmt.Printf("✓ Template deleted: %s\n", taskLabel(tpl.Emoji, tpl.Text))

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown templates command %q\n\n", action)
		fs.Usage()
		os.Exit(1)
	}
}

// printTemplates writes the numbered template catalog, marking templates
// already used today.
func printTemplates(w io.Writer, p *planner.Planner, ids bool) {
	templates := p.Templates()
	if len(templates) == 0 {
		fmt.Fprintln(w, "No templates yet.")
		fmt.Fprintln(w, "Run 'planner templates add TEXT' to create one.")
		return
	}

	used := make(map[string]bool)
	for _, t := range p.TasksOn(p.Today()) {
		if t.FromTemplate != "" {
			used[t.FromTemplate] = true
		}
	}

	fmt.Fprintln(w, "Templates:")
	for i, tpl := range templates {
		mark := " "
		if used[tpl.ID] {
			mark = "✓"
		}
		fmt.Fprintf(w, "  %2d. %s %s", i+1, mark, taskLabel(tpl.Emoji, tpl.Text))
		if ids {
			fmt.Fprintf(w, "  [%s]", tpl.ID)
		}
		fmt.Fprintln(w)
	}
}

package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

type options struct {
	Config string `long:"config" description:"path to a quill config file"`
}

var opts options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "markdown editor core tools"

	commands := []struct {
		name, short, long string
		cmd               interface{}
	}{
		{"render", "Render a markdown file",
			"Render a markdown file to the terminal with syntax styling, or to HTML with --html.",
			&renderCmd{}},
		{"find", "Search across files",
			"Search one or more files for a literal string or regular expression and print the matching lines.",
			&findCmd{}},
		{"replace", "Replace across files",
			"Replace every occurrence of a query in one or more files. Writes to stdout unless --in-place is given.",
			&replaceCmd{}},
		{"serve", "Serve a live HTML preview",
			"Serve an HTML preview of a markdown file over HTTP with websocket refresh.",
			&serveCmd{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.cmd); err != nil {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
			os.Exit(1)
		}
	}

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		if _, ok := err.(*flags.Error); !ok {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		}
		os.Exit(1)
	}
}

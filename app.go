package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/odvcencio/quill/config"
	"github.com/odvcencio/quill/editor"
	"github.com/odvcencio/quill/findreplace"
	"github.com/odvcencio/quill/markdown"
	"github.com/odvcencio/quill/web"
)

// workspaceHost adapts the concrete workspace to the engine's document-host
// interface.
type workspaceHost struct {
	ws *editor.Workspace
}

func (h *workspaceHost) ActiveDocument() findreplace.Document {
	if doc := h.ws.ActiveDocument(); doc != nil {
		return doc
	}
	return nil
}

func (h *workspaceHost) Documents() []findreplace.Document {
	docs := h.ws.Documents()
	out := make([]findreplace.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, d)
	}
	return out
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return cfg, err
	}
	color.NoColor = color.NoColor || !cfg.Color
	return cfg, nil
}

func openWorkspace(paths []string) (*editor.Workspace, error) {
	ws := editor.NewWorkspace()
	for _, p := range paths {
		if _, err := ws.Open(p); err != nil {
			return nil, err
		}
	}
	if ws.Count() > 0 {
		ws.SetActive(0)
	}
	return ws, nil
}

var styleColors = map[markdown.Style]*color.Color{
	markdown.Header1:     color.New(color.FgBlue, color.Bold),
	markdown.Header2:     color.New(color.FgBlue, color.Bold),
	markdown.Header3Plus: color.New(color.FgBlue),
	markdown.Bold:        color.New(color.Bold),
	markdown.Italic:      color.New(color.Italic),
	markdown.BoldItalic:  color.New(color.Bold, color.Italic),
	markdown.Blockquote:  color.New(color.FgGreen),
	markdown.Code:        color.New(color.FgYellow),
}

// renderBlock styles one block's text with its runs for terminal output.
// Runs are non-overlapping and sorted, so a single left-to-right pass works.
func renderBlock(text string, runs []markdown.Run) string {
	if len(runs) == 0 {
		return text
	}
	var b strings.Builder
	pos := 0
	for _, r := range runs {
		if r.Start < pos || r.End() > len(text) {
			continue
		}
		b.WriteString(text[pos:r.Start])
		b.WriteString(styleColors[r.Style].Sprint(text[r.Start:r.End()]))
		pos = r.End()
	}
	b.WriteString(text[pos:])
	return b.String()
}

type renderCmd struct {
	HTML bool `long:"html" description:"emit HTML instead of terminal styling"`
	Args struct {
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`
}

func (c *renderCmd) Execute(args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	ws, err := openWorkspace([]string{c.Args.File})
	if err != nil {
		return err
	}
	doc := ws.ActiveDocument()

	if c.HTML {
		html, err := web.NewPreviewServer(doc).RenderHTML()
		if err != nil {
			return err
		}
		fmt.Print(html)
		return nil
	}

	hl := markdown.NewHighlighter(doc, doc)
	hl.Enable()
	for i := 0; i < doc.BlockCount(); i++ {
		fmt.Println(renderBlock(doc.BlockText(i), doc.Styles(i)))
	}
	return nil
}

type searchFlags struct {
	CaseSensitive bool `short:"c" long:"case" description:"match case"`
	WholeWord     bool `short:"w" long:"word" description:"match whole words (literal queries only)"`
	Regex         bool `short:"e" long:"regex" description:"treat the query as a regular expression"`
}

func (f searchFlags) options(cfg config.Config) findreplace.Options {
	return findreplace.Options{
		CaseSensitive: f.CaseSensitive || cfg.Search.CaseSensitive,
		WholeWord:     f.WholeWord || cfg.Search.WholeWord,
		Regex:         f.Regex || cfg.Search.Regex,
	}
}

type findCmd struct {
	searchFlags
	Args struct {
		Query string   `positional-arg-name:"QUERY" required:"yes"`
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

func (c *findCmd) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ws, err := openWorkspace(c.Args.Files)
	if err != nil {
		return err
	}

	var status string
	engine := findreplace.New(&workspaceHost{ws: ws})
	engine.StatusFunc = func(msg string) { status = msg }

	engine.FindAll(c.Args.Query, c.options(cfg), findreplace.AllDocuments())

	matchColor := color.New(color.FgRed, color.Bold)
	fileColor := color.New(color.FgMagenta)
	for _, row := range engine.Results() {
		line := row.LineText
		end := row.Col + len(row.Text)
		if end > len(line) {
			end = len(line)
		}
		fmt.Printf("%s:%d:%d: %s%s%s\n",
			fileColor.Sprint(row.Doc.Title()), row.Line, row.Col+1,
			line[:row.Col], matchColor.Sprint(line[row.Col:end]), line[end:])
	}
	if status != "" {
		fmt.Fprintln(os.Stderr, status)
	}
	return nil
}

type replaceCmd struct {
	searchFlags
	InPlace bool `short:"i" long:"in-place" description:"write changed files back in place"`
	Args    struct {
		Query       string   `positional-arg-name:"QUERY" required:"yes"`
		Replacement string   `positional-arg-name:"REPLACEMENT" required:"yes"`
		Files       []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

func (c *replaceCmd) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ws, err := openWorkspace(c.Args.Files)
	if err != nil {
		return err
	}

	var status string
	engine := findreplace.New(&workspaceHost{ws: ws})
	engine.StatusFunc = func(msg string) { status = msg }

	engine.ReplaceAll(c.Args.Query, c.Args.Replacement, c.options(cfg), findreplace.AllDocuments())

	for _, doc := range ws.Documents() {
		if c.InPlace {
			if doc.Dirty() {
				if err := doc.Save(); err != nil {
					return err
				}
			}
		} else {
			fmt.Print(doc.Text())
		}
	}
	if status != "" {
		fmt.Fprintln(os.Stderr, status)
	}
	return nil
}

type serveCmd struct {
	Addr string `long:"addr" description:"listen address (overrides config)"`
	Args struct {
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`
}

func (c *serveCmd) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := c.Addr
	if addr == "" {
		addr = cfg.Preview.Addr
	}

	ws, err := openWorkspace([]string{c.Args.File})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := web.NewPreviewServer(ws.ActiveDocument())
	server := &http.Server{Addr: addr, Handler: srv}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	log.Printf("quill preview: http://localhost%s", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

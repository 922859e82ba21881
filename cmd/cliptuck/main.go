package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/bus"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/capture"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/exporter"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/importer"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/logger"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/picker"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/search"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/server"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/storage"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/store"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "add":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: cliptuck add <url> [title] [tags]\n")
				os.Exit(1)
			}
			runAdd(os.Args[2:])
			return
		case "capture":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: cliptuck capture '<query-string>'\n")
				os.Exit(1)
			}
			runCapture(strings.Join(os.Args[2:], "&"))
			return
		case "serve":
			var addr string
			if len(os.Args) >= 3 {
				addr = os.Args[2]
			}
			runServe(addr)
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: cliptuck import <file.json|file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as quick search query.
			runQuickSearch(strings.Join(os.Args[1:], " "))
			return
		}
	}

	runTUI()
}

func printHelp() {
	help := `cliptuck - read it later bookmarks

Usage:
  cliptuck                      Open interactive TUI
  cliptuck <query>              Quick search → select → open
  cliptuck add <url> [title] [tags]
                                Save a bookmark
  cliptuck capture '<params>'   Save from a bookmarklet-style query string
                                (add=<url>&title=...&tags=...&popup=1)
  cliptuck serve [addr]         Run the capture server with bookmarklets
  cliptuck import <file>        Import bookmarks (JSON or browser HTML)
  cliptuck export [path]        Export (JSON by default, .html for browsers)
  cliptuck help                 Show this help

TUI Keybindings:
  j/k         Move down/up
  gg/G        Jump to top/bottom
  tab         Toggle active/archived
  /           Search
  s           Cycle grouping (domain, date, both)
  a/e         Add / edit bookmark
  x           Archive / restore
  d           Delete (space marks, D deletes marked)
  Y           Copy URL to clipboard
  o/Enter     Open in browser
  q           Quit

Data Storage:
  ~/.config/cliptuck/cliptuck-data.json (or cliptuck.db when present)
`
	fmt.Print(help)
}

// openStore loads the document through whichever backend is configured.
func openStore() (*store.Store, storage.Storage) {
	persist, err := storage.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(persist)
	if err != nil {
		if st == nil {
			fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
			os.Exit(1)
		}
		// A corrupt data file degrades to an empty document; say so and
		// keep going rather than losing the session.
		fmt.Fprintf(os.Stderr, "Warning: %v (starting empty)\n", err)
	}
	return st, persist
}

func loadConfig() *storage.Config {
	path, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runTUI runs the full interactive TUI.
func runTUI() {
	st, persist := openStore()
	defer closeStorage(persist)

	app := tui.NewApp(tui.AppParams{Store: st, Config: loadConfig()})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runAdd saves one bookmark from positional arguments.
func runAdd(args []string) {
	st, persist := openStore()
	defer closeStorage(persist)

	params := store.AddParams{URL: args[0]}
	if len(args) >= 2 {
		params.Title = args[1]
	}
	if len(args) >= 3 {
		params.Tags = model.ParseTags(args[2])
	}
	params.Tags = append(params.Tags, loadConfig().CaptureTags...)

	saved, err := st.Add(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved: %s (%s)\n", saved.Title, saved.URL)
}

// runCapture saves from a bookmarklet-style query string. Direct mode
// auto-submits after the settle delay; popup mode shows the draft and asks.
func runCapture(raw string) {
	intent, err := capture.ParseQueryString(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st, persist := openStore()
	defer closeStorage(persist)

	draft := intent.Draft()
	if intent.Mode == capture.ModePopup {
		fmt.Printf("URL:         %s\n", draft.URL)
		fmt.Printf("Title:       %s\n", draft.Title)
		if len(draft.Tags) > 0 {
			fmt.Printf("Tags:        %s\n", strings.Join(draft.Tags, ", "))
		}
		if draft.Description != "" {
			fmt.Printf("Description: %s\n", draft.Description)
		}
		fmt.Print("Save? [y/N] ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Cancelled.")
			return
		}
		saveDraft(st, draft)
		return
	}

	// Direct mode: the settle delay gives a chance to ctrl-c out.
	b := bus.New()
	defer b.Close()
	bridge := capture.NewBridge(b, capture.Delays{})

	done := make(chan struct{})
	bridge.AutoSubmit(intent, func(d capture.Draft) {
		saveDraft(st, d)
		close(done)
	})
	<-done
}

func saveDraft(st *store.Store, d capture.Draft) {
	saved, err := st.Add(store.AddParams{
		URL:         d.URL,
		Title:       d.Title,
		Tags:        d.Tags,
		Description: d.Description,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved: %s (%s)\n", saved.Title, saved.URL)
}

// runServe runs the capture HTTP server until interrupted.
func runServe(addr string) {
	cfg := loadConfig()
	if addr == "" {
		addr = cfg.ListenAddr
	}

	st, persist := openStore()
	defer closeStorage(persist)

	log := logger.New("info", true)
	defer func() { _ = log.Sync() }()

	srv := server.New(addr, st, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
			os.Exit(1)
		}
	}
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(query string) {
	st, persist := openStore()
	defer closeStorage(persist)
	cfg := loadConfig()

	// Search only what is not archived.
	active := []model.Bookmark{}
	for _, b := range st.Document().Bookmarks {
		if !b.Archived {
			active = append(active, b)
		}
	}

	results := search.FuzzySearch(active, query)
	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		return
	}

	var selected *model.Bookmark
	if len(results) == 1 {
		selected = results[0].Bookmark
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.Selected()
	}

	if selected == nil {
		return
	}

	if cfg.OpenAfterSearch {
		fmt.Printf("Opening: %s\n", selected.Title)
		openURL(selected.URL)
	} else {
		fmt.Println(selected.URL)
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

// runImport handles the import subcommand, choosing the parser by extension.
func runImport(filePath string) {
	st, persist := openStore()
	defer closeStorage(persist)

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	var incoming []model.Bookmark
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".html", ".htm":
		incoming, err = importer.ParseHTML(strings.NewReader(string(data)))
	default:
		var doc *model.Document
		doc, err = importer.ParseJSON(data)
		if doc != nil {
			incoming = doc.Bookmarks
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", filePath, err)
		os.Exit(1)
	}

	added, err := st.ImportMerge(incoming)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving bookmarks: %v\n", err)
		os.Exit(1)
	}

	skipped := len(incoming) - added
	fmt.Printf("Imported %d bookmarks", added)
	if skipped > 0 {
		fmt.Printf(" (%d already present)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand. A .html path produces the
// browser-importable format, anything else the full JSON document.
func runExport(outputPath string) {
	st, persist := openStore()
	defer closeStorage(persist)

	now := time.Now()
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath(now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	var data []byte
	if ext := strings.ToLower(filepath.Ext(outputPath)); ext == ".html" || ext == ".htm" {
		data = []byte(exporter.ExportHTML(st.Document()))
	} else {
		if err := st.MarkExported(now); err != nil {
			fmt.Fprintf(os.Stderr, "Error stamping export: %v\n", err)
			os.Exit(1)
		}
		var err error
		data, err = exporter.ExportJSON(st.Document())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding export: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", len(st.Document().Bookmarks), outputPath)
}

// closeStorage closes backends that hold resources (SQLite).
func closeStorage(persist storage.Storage) {
	if closer, ok := persist.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

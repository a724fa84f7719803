// Command lumen runs the worship presentation controller: an HTTP
// server for the operator console plus CLI tools for datasets, songs
// and manual verse edits.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/eternallight/lumen/core/bible"
	"github.com/eternallight/lumen/core/canon"
	"github.com/eternallight/lumen/core/cas"
	"github.com/eternallight/lumen/core/display"
	"github.com/eternallight/lumen/core/refparse"
	"github.com/eternallight/lumen/core/songs"
	"github.com/eternallight/lumen/internal/bus"
	"github.com/eternallight/lumen/internal/config"
	"github.com/eternallight/lumen/internal/controller"
	"github.com/eternallight/lumen/internal/datasets"
	"github.com/eternallight/lumen/internal/logging"
	"github.com/eternallight/lumen/internal/server"
	"github.com/eternallight/lumen/internal/store"
)

const version = "1.0.0"

// CLI defines the command-line interface for lumen.
var CLI struct {
	Serve   ServeCmd   `cmd:"" default:"withargs" help:"Start the controller server"`
	Lookup  LookupCmd  `cmd:"" help:"Resolve a verse reference against a dataset"`
	Search  SearchCmd  `cmd:"" help:"Full-text search in a dataset"`
	Import  ImportCmd  `cmd:"" help:"Convert an OSIS XML document into a dataset file"`
	Song    SongGroup  `cmd:"" help:"Manage the user songbook"`
	Edits   EditsGroup `cmd:"" help:"Export and import manual verse edits"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ServeCmd starts the HTTP controller server.
type ServeCmd struct {
	Host         string `help:"Bind address (overrides LUMEN_HOST)"`
	Port         int    `help:"HTTP server port (overrides LUMEN_PORT)"`
	Translation  string `help:"Startup translation (overrides LUMEN_TRANSLATION)"`
	LocalDisplay bool   `name:"local-display" help:"Attach a terminal display surface to the broadcast channel"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Translation != "" {
		cfg.Display.DefaultTranslation = c.Translation
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.InitLogger(logging.ParseLevel(cfg.Logging.Level), logging.ParseFormat(cfg.Logging.Format))

	st, err := store.Open(cfg.Data.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	blobs, err := cas.NewStore(cfg.Data.BlobDir)
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}

	reg := canon.NewRegistry()
	dm := datasets.NewManager(cfg.Data.DatasetDir, reg)

	static, err := loadSongbooks(cfg.Data.SongbooksPath)
	if err != nil {
		return fmt.Errorf("loading songbooks: %w", err)
	}
	lib, err := songs.NewLibrary(static, st)
	if err != nil {
		return fmt.Errorf("building song library: %w", err)
	}

	hub := bus.NewHub()
	go hub.Run()

	ch := bus.NewChannel(hub)
	preview := bus.NewMiniPreview()
	ch.AddPreview(preview)

	if c.LocalDisplay {
		ch.OpenDisplay(consoleOpener{
			show: cfg.Display.ShowSettle,
			hide: cfg.Display.HideSettle,
		})
	}

	ctrl, err := controller.New(reg, dm, st, ch, lib, cfg.Display.DefaultTranslation)
	if err != nil {
		return fmt.Errorf("starting controller: %w", err)
	}

	srv := server.New(ctrl, st, hub, preview, blobs)
	return srv.ListenAndServe(cfg.Server.Host, cfg.Server.Port)
}

// consoleOpener opens a terminal display surface standing in for a
// projector. Preferred placement writes to the controlling terminal so
// output survives stdout redirection; the fallback renders to stdout.
type consoleOpener struct {
	show, hide time.Duration
}

func (o consoleOpener) OpenPreferred() (bus.DisplaySink, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return nil, err
	}
	return o.open(tty), nil
}

func (o consoleOpener) OpenFallback() (bus.DisplaySink, error) {
	return o.open(os.Stdout), nil
}

func (o consoleOpener) open(w io.Writer) bus.DisplaySink {
	d := display.New(renderFrames(w), display.WithSettleDelays(o.show, o.hide))
	return bus.NewLocalDisplay(d)
}

// renderFrames prints visible frames to w.
func renderFrames(w io.Writer) display.Renderer {
	return func(f display.Frame) {
		if !f.Visible {
			return
		}
		if f.Reference != "" {
			fmt.Fprintf(w, "\n%s\n%s\n", f.Text, f.Reference)
			return
		}
		fmt.Fprintf(w, "\n%s\n", f.Text)
	}
}

// loadSongbooks reads an optional static songbook file. A missing path
// is not an error; operators without prepared songbooks start with the
// user book only.
func loadSongbooks(path string) ([]*songs.Songbook, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var books []*songs.Songbook
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return books, nil
}

// LookupCmd resolves a verse reference and prints it as JSON.
type LookupCmd struct {
	Query       string `arg:"" help:"Verse reference, e.g. 'Иоанна 3:16'"`
	Datasets    string `help:"Dataset directory" default:"data/translations" type:"path"`
	Translation string `help:"Translation code" default:"RST"`
}

func (c *LookupCmd) Run() error {
	reg := canon.NewRegistry()
	dm := datasets.NewManager(c.Datasets, reg)
	ds, err := dm.Get(c.Translation)
	if err != nil {
		return err
	}

	parsed, ok := refparse.New(reg).Parse(c.Query)
	if !ok {
		return fmt.Errorf("could not parse reference: %s", c.Query)
	}
	verse := bible.NewResolver(reg).FetchVerse(parsed, ds, c.Translation)
	if verse == nil {
		return fmt.Errorf("verse not found: %s", c.Query)
	}
	return printJSON(verse)
}

// SearchCmd runs a full-text search over a dataset.
type SearchCmd struct {
	Term        string `arg:"" help:"Search term"`
	Datasets    string `help:"Dataset directory" default:"data/translations" type:"path"`
	Translation string `help:"Translation code" default:"RST"`
	Limit       int    `help:"Maximum results" default:"20"`
}

func (c *SearchCmd) Run() error {
	reg := canon.NewRegistry()
	dm := datasets.NewManager(c.Datasets, reg)
	ds, err := dm.Get(c.Translation)
	if err != nil {
		return err
	}

	hits := bible.NewResolver(reg).FullTextSearch(c.Term, ds, c.Translation, c.Limit)
	for _, h := range hits {
		fmt.Printf("%s  %s\n", h.Reference, h.Text)
	}
	fmt.Printf("%d result(s)\n", len(hits))
	return nil
}

// ImportCmd converts an OSIS XML document into the dataset format the
// server loads at runtime.
type ImportCmd struct {
	Path        string `arg:"" help:"Path to OSIS XML file" type:"existingfile"`
	Out         string `required:"" help:"Output dataset path (.json)" type:"path"`
	Translation string `help:"Translation code the numbering follows" default:"RST"`
}

func (c *ImportCmd) Run() error {
	in, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer in.Close()

	reg := canon.NewRegistry()
	ds, err := bible.ParseOSIS(in, reg, c.Translation)
	if err != nil {
		return fmt.Errorf("parsing OSIS: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.Out), 0o755); err != nil {
		return err
	}
	out, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := bible.WriteJSON(out, ds); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	verses := 0
	for _, b := range ds.Books {
		for _, ch := range b.Chapters {
			verses += len(ch.Verses)
		}
	}
	fmt.Printf("imported %d book(s), %d verse(s) to %s\n", len(ds.Books), verses, c.Out)
	return nil
}

// SongGroup contains user songbook operations.
type SongGroup struct {
	List SongListCmd `cmd:"" help:"List songs in the user songbook"`
	Add  SongAddCmd  `cmd:"" help:"Add a song to the user songbook"`
	Rm   SongRmCmd   `cmd:"" help:"Remove a song from the user songbook"`
}

// SongListCmd lists user songs, optionally filtered.
type SongListCmd struct {
	Query    string `arg:"" optional:"" help:"Number or title filter"`
	Database string `help:"SQLite database path" default:"data/lumen.db" type:"path"`
}

func (c *SongListCmd) Run() error {
	lib, st, err := openLibrary(c.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, s := range lib.Search(c.Query, songs.UserBookID) {
		if s.Number > 0 {
			fmt.Printf("%s  %d. %s\n", s.ID, s.Number, s.Title)
		} else {
			fmt.Printf("%s  %s\n", s.ID, s.Title)
		}
	}
	return nil
}

// SongAddCmd adds a song from a text file or inline text.
type SongAddCmd struct {
	Title    string `required:"" help:"Song title"`
	Number   int    `help:"Song number"`
	Text     string `help:"Song text; stanzas separated by blank lines" xor:"source"`
	File     string `help:"Read song text from file" xor:"source" type:"existingfile"`
	Database string `help:"SQLite database path" default:"data/lumen.db" type:"path"`
}

func (c *SongAddCmd) Run() error {
	text := c.Text
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return err
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("song text is required (--text or --file)")
	}

	lib, st, err := openLibrary(c.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := lib.Save(songs.Song{Title: c.Title, Number: c.Number, Text: text})
	if err != nil {
		return err
	}
	fmt.Printf("added %s (%s)\n", saved.Title, saved.ID)
	return nil
}

// SongRmCmd removes a user song by ID.
type SongRmCmd struct {
	ID       string `arg:"" help:"Song ID"`
	Database string `help:"SQLite database path" default:"data/lumen.db" type:"path"`
}

func (c *SongRmCmd) Run() error {
	lib, st, err := openLibrary(c.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := lib.Delete(c.ID); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", c.ID)
	return nil
}

func openLibrary(dbPath string) (*songs.Library, *store.Store, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	lib, err := songs.NewLibrary(nil, st)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return lib, st, nil
}

// EditsGroup contains manual verse edit transfer operations.
type EditsGroup struct {
	Export EditsExportCmd `cmd:"" help:"Export manual edits to a JSON file"`
	Import EditsImportCmd `cmd:"" help:"Import manual edits from a JSON file"`
}

// EditsExportCmd writes all manual edits as JSON.
type EditsExportCmd struct {
	Out      string `required:"" help:"Output JSON path" type:"path"`
	Database string `help:"SQLite database path" default:"data/lumen.db" type:"path"`
}

func (c *EditsExportCmd) Run() error {
	st, err := store.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	data, err := st.ExportEdits()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("exported edits to %s\n", c.Out)
	return nil
}

// EditsImportCmd merges manual edits from a JSON file.
type EditsImportCmd struct {
	Path     string `arg:"" help:"JSON file to import" type:"existingfile"`
	Database string `help:"SQLite database path" default:"data/lumen.db" type:"path"`
}

func (c *EditsImportCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	st, err := store.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	n, err := st.ImportEdits(data)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d edit(s)\n", n)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("lumen %s\n", version)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lumen"),
		kong.Description("Lumen - worship presentation controller"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}

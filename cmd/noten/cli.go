package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/noten/internal/config"
	"github.com/hpungsan/noten/internal/db"
	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/kv"
	"github.com/hpungsan/noten/internal/ops"
	"github.com/hpungsan/noten/internal/persist"
	"github.com/hpungsan/noten/internal/store"
	"github.com/hpungsan/noten/internal/web"
)

// maxStdinBytes caps note text read from stdin.
const maxStdinBytes = 1 << 20

// env carries what every command needs to open a note session.
type env struct {
	baseDir string
	cfg     *config.Config
	logger  *slog.Logger
}

// openStore opens the note store for one command.
// With memory set the notes live in a throwaway in-memory key-value store.
func (e *env) openStore(ctx context.Context, memory bool) (*store.NoteStore, func(), error) {
	var (
		backend kv.Store
		closeFn = func() {}
	)

	if memory {
		backend = kv.NewMemory()
	} else {
		database, err := db.Init(e.baseDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		db.ConfigurePool(database, e.cfg)
		backend = db.NewKV(database)
		closeFn = func() { database.Close() }
	}

	codec := persist.NewCodec(backend,
		persist.WithKey(e.cfg.StorageKey),
		persist.WithLogger(e.logger),
	)
	s := store.Open(ctx, codec,
		store.WithConfig(e.cfg),
		store.WithLogger(e.logger),
	)
	return s, closeFn, nil
}

// withStore opens the store, runs fn and closes the store again.
func (e *env) withStore(c *cli.Context, fn func(*store.NoteStore) error) error {
	s, closeStore, err := e.openStore(c.Context, c.Bool("memory"))
	if err != nil {
		return outputError(errors.NewInternal(err))
	}
	defer closeStore()
	return fn(s)
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "noten",
		Usage:   "Minimal note keeper",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "memory", Usage: "Keep notes in memory for this session only"},
		},
		Commands: []*cli.Command{
			addCmd(e),
			listCmd(e),
			getCmd(e),
			latestCmd(e),
			updateCmd(e),
			deleteCmd(e),
			clearCmd(e),
			exportCmd(e),
			serveCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a note (text from arguments or stdin)",
		ArgsUsage: "[text...]",
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if text == "" && stdinHasData() {
				var err error
				if text, err = readStdin(maxStdinBytes); err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
			}

			return e.withStore(c, func(s *store.NoteStore) error {
				return outputJSON(c, ops.Add(c.Context, s, ops.AddInput{Text: text}))
			})
		},
	}
}

// listCmd creates the list command.
func listCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all notes",
		Action: func(c *cli.Context) error {
			return e.withStore(c, func(s *store.NoteStore) error {
				return outputJSON(c, ops.List(s))
			})
		},
	}
}

// getCmd creates the get command.
func getCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one note by ID or --index",
		ArgsUsage: "[id]",
		Flags:     []cli.Flag{indexFlag()},
		Action: func(c *cli.Context) error {
			id, index := address(c)
			return e.withStore(c, func(s *store.NoteStore) error {
				output, err := ops.Fetch(s, ops.FetchInput{ID: id, Index: index})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c, output)
			})
		},
	}
}

// latestCmd creates the latest command.
func latestCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Show the most recently added note",
		Action: func(c *cli.Context) error {
			return e.withStore(c, func(s *store.NoteStore) error {
				output, err := ops.Latest(s)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c, output)
			})
		},
	}
}

// updateCmd creates the update command.
func updateCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Replace the text of a note (text from --text or stdin)",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			indexFlag(),
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "New note text"},
		},
		Action: func(c *cli.Context) error {
			id, index := address(c)

			text := c.String("text")
			if !c.IsSet("text") && stdinHasData() {
				var err error
				if text, err = readStdin(maxStdinBytes); err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
			}

			return e.withStore(c, func(s *store.NoteStore) error {
				output, err := ops.Update(c.Context, s, ops.UpdateInput{ID: id, Index: index, Text: text})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c, output)
			})
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a note by ID or --index",
		ArgsUsage: "[id]",
		Flags:     []cli.Flag{indexFlag()},
		Action: func(c *cli.Context) error {
			id, index := address(c)
			return e.withStore(c, func(s *store.NoteStore) error {
				output, err := ops.Delete(c.Context, s, ops.DeleteInput{ID: id, Index: index})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c, output)
			})
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete every note",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm deleting all notes"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return outputError(errors.NewInvalidRequest("refusing to delete all notes without --yes"))
			}
			return e.withStore(c, func(s *store.NoteStore) error {
				return outputJSON(c, ops.Clear(c.Context, s))
			})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all notes as JSON or YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: persist.FormatJSON, Usage: "Output format: json|yaml"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to file instead of stdout"},
		},
		Action: func(c *cli.Context) error {
			return e.withStore(c, func(s *store.NoteStore) error {
				w := c.App.Writer
				if path := c.String("output"); path != "" {
					f, err := os.Create(path)
					if err != nil {
						return outputError(errors.NewInternal(err))
					}
					defer f.Close()
					w = f
				}

				if err := ops.Export(w, s, c.String("format")); err != nil {
					return outputError(err)
				}
				return nil
			})
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8080, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			return e.withStore(c, func(s *store.NoteStore) error {
				srv, err := web.NewServer(s, e.logger, Version, c.String("bind"), c.Int("port"))
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				return web.Run(srv, e.logger)
			})
		},
	}
}

func indexFlag() cli.Flag {
	return &cli.IntFlag{Name: "index", Aliases: []string{"i"}, Usage: "0-based position in the list"}
}

// address extracts the positional ID and the --index flag.
func address(c *cli.Context) (string, *int) {
	var index *int
	if c.IsSet("index") {
		i := c.Int("index")
		index = &i
	}
	return c.Args().First(), index
}

// outputJSON writes JSON output to the app's writer.
func outputJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if nErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", nErr.Code, nErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin, up to limit bytes.
func readStdin(limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("stdin exceeds %d bytes", limit)
	}
	return strings.TrimSpace(string(data)), nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/ytget/progdeck/internal/config"
	"github.com/ytget/progdeck/internal/library"
	"github.com/ytget/progdeck/internal/model"
	"github.com/ytget/progdeck/internal/platform"
)

// errUsage marks errors caused by bad command-line arguments
var errUsage = errors.New("usage")

type cli struct {
	settings     *config.Settings
	settingsPath string
	docs         *platform.DocumentService
	logger       *zap.Logger
	stdout       io.Writer
	stderr       io.Writer
}

type command struct {
	name  string
	usage string
	run   func(c *cli, args []string) error
}

var commands = []command{
	{"validate", "validate                      check the document shape and active selection", (*cli).validate},
	{"list", "list                          list programs in order, * marks the active one", (*cli).list},
	{"active", "active                        print the active program", (*cli).active},
	{"select", "select NAME | -none           change the active program", (*cli).selectProgram},
	{"put", "put [-color C] NAME DURATION [LINE...]  add a program or replace one with the same name", (*cli).put},
	{"remove", "remove NAME                   delete a program", (*cli).remove},
	{"move", "move NAME INDEX               move a program to a zero-based position", (*cli).move},
	{"convert", "convert [-format F] OUT       write the document to OUT, format from -format or its extension", (*cli).convert},
	{"init-config", "init-config                   write the effective settings to the -config file", (*cli).initConfig},
	{"version", "version                       print the version", (*cli).printVersion},
}

func commandHelp() string {
	var b strings.Builder
	for _, cmd := range commands {
		b.WriteString("  " + cmd.usage + "\n")
	}
	return b.String()
}

func (c *cli) dispatch(name string, args []string) int {
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		err := cmd.run(c, args)
		if err == nil {
			return ExitOK
		}
		fmt.Fprintf(c.stderr, "%s %s: %v\n", AppName, name, err)
		if errors.Is(err, errUsage) {
			return ExitUsage
		}
		return ExitFailed
	}
	fmt.Fprintf(c.stderr, "%s: unknown command %q\n\ncommands:\n%s", AppName, name, commandHelp())
	return ExitUsage
}

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

// load reads the configured document
func (c *cli) load() (*model.Programs, error) {
	return c.docs.Load(c.settings.GetDocumentPath())
}

// edit runs fn against a library seeded from the document and saves every
// committed change back. A missing document starts an empty collection.
func (c *cli) edit(fn func(lib *library.Library) error) error {
	path := c.settings.GetDocumentPath()
	ps, err := c.docs.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		c.logger.Info("document not found, starting empty", zap.String("path", path))
		ps, err = model.NewPrograms(model.NoActive, nil)
	}
	if err != nil {
		return err
	}

	lib := library.New(library.WithPrograms(ps), library.WithLogger(c.logger.Named("library")))
	var saveErr error
	lib.SetUpdateCallback(func(updated *model.Programs, revision string) {
		if err := c.docs.Save(path, updated); err != nil {
			saveErr = err
			return
		}
		c.logger.Debug("document written", zap.String("path", path), zap.String("revision", revision))
	})
	if err := fn(lib); err != nil {
		return err
	}
	return saveErr
}

func (c *cli) validate(args []string) error {
	if len(args) != 0 {
		return usageErr("takes no arguments")
	}
	ps, err := c.load()
	if err != nil {
		return err
	}
	unit := c.settings.GetDurationUnit()

	active, err := ps.ActiveProgram()
	switch {
	case err == nil:
		fmt.Fprintf(c.stdout, "ok: %d programs, total %s, active %q\n", ps.Len(), ps.TotalDuration(unit), active.Name)
	case errors.Is(err, model.ErrNoActiveProgram):
		fmt.Fprintf(c.stdout, "ok: %d programs, total %s, no active program\n", ps.Len(), ps.TotalDuration(unit))
	default:
		return fmt.Errorf("active: %w", err)
	}

	for _, p := range ps.Programs {
		if _, err := p.NRGBA(); err != nil {
			c.logger.Warn("color is not a known name or hex code",
				zap.String("program", p.Name), zap.String("color", p.Color))
		}
	}
	return nil
}

func (c *cli) list(args []string) error {
	if len(args) != 0 {
		return usageErr("takes no arguments")
	}
	ps, err := c.load()
	if err != nil {
		return err
	}
	unit := c.settings.GetDurationUnit()

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\t#\tNAME\tCOLOR\tDURATION\tLINES")
	for i, p := range ps.Programs {
		mark := ""
		if ps.Active != model.NoActive && p.HasName(ps.Active) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%d\n", mark, i, p.Name, p.Color, p.DisplayDuration(unit), p.LineCount())
	}
	return tw.Flush()
}

func (c *cli) active(args []string) error {
	if len(args) != 0 {
		return usageErr("takes no arguments")
	}
	ps, err := c.load()
	if err != nil {
		return err
	}
	p, err := ps.ActiveProgram()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "%s (%s, %s)\n", p.Name, p.Color, p.DisplayDuration(c.settings.GetDurationUnit()))
	for _, line := range p.Text {
		fmt.Fprintln(c.stdout, line)
	}
	return nil
}

func (c *cli) selectProgram(args []string) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	none := fs.Bool("none", false, "clear the selection")
	if err := fs.Parse(args); err != nil {
		return usageErr("%v", err)
	}

	name := model.NoActive
	switch {
	case *none && fs.NArg() == 0:
	case !*none && fs.NArg() == 1:
		name = fs.Arg(0)
	default:
		return usageErr("expected NAME or -none")
	}
	return c.edit(func(lib *library.Library) error {
		return lib.Select(name)
	})
}

func (c *cli) put(args []string) error {
	fs := flag.NewFlagSet("put", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	color := fs.String("color", c.settings.GetDefaultColor(), "display color")
	if err := fs.Parse(args); err != nil {
		return usageErr("%v", err)
	}
	if fs.NArg() < 2 {
		return usageErr("expected NAME DURATION [LINE...]")
	}
	duration, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		return usageErr("bad duration %q", fs.Arg(1))
	}

	p, err := model.NewProgram(fs.Arg(0), fs.Args()[2:], *color, duration)
	if err != nil {
		return err
	}
	return c.edit(func(lib *library.Library) error {
		return lib.Upsert(p)
	})
}

func (c *cli) remove(args []string) error {
	if len(args) != 1 {
		return usageErr("expected NAME")
	}
	return c.edit(func(lib *library.Library) error {
		return lib.Remove(args[0])
	})
}

func (c *cli) move(args []string) error {
	if len(args) != 2 {
		return usageErr("expected NAME INDEX")
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return usageErr("bad index %q", args[1])
	}
	return c.edit(func(lib *library.Library) error {
		return lib.Move(args[0], index)
	})
}

func (c *cli) convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	formatName := fs.String("format", "", "json, yaml or toml")
	if err := fs.Parse(args); err != nil {
		return usageErr("%v", err)
	}
	if fs.NArg() != 1 {
		return usageErr("expected OUT")
	}
	out := fs.Arg(0)

	ps, err := c.load()
	if err != nil {
		return err
	}
	if *formatName == "" {
		err = c.docs.Save(out, ps)
	} else {
		format, perr := platform.ParseFormat(*formatName)
		if perr != nil {
			return usageErr("%v", perr)
		}
		err = c.docs.SaveAs(out, format, ps)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "wrote %s\n", out)
	return nil
}

func (c *cli) initConfig(args []string) error {
	if len(args) != 0 {
		return usageErr("takes no arguments")
	}
	// Pin the resolved document path so the file is self-contained
	c.settings.SetDocumentPath(c.settings.GetDocumentPath())
	if err := config.SaveSettings(c.settingsPath, c.settings); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "wrote %s\n", c.settingsPath)
	return nil
}

func (c *cli) printVersion(args []string) error {
	fmt.Fprintf(c.stdout, "%s %s\n", AppName, version)
	return nil
}

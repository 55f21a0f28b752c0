package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"seleniumguide/catalog"
	"seleniumguide/config"
	"seleniumguide/export"
)

const usage = `Usage: seleniumguide [-config FILE] <command> [flags]

Commands:
  serve        run the HTTP server
  export       export one section (-section ID -format pptx -out DIR)
  export-all   export every section (-format pptx -out DIR)
  practice     write the locator practice page (-out DIR)
  catalog      validate and list the curriculum
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("seleniumguide", flag.ContinueOnError)
	configPath := global.String("config", "", "config file (default ./seleniumguide.yaml)")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	if cmd == "catalog" {
		return runCatalog(out)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	switch cmd {
	case "serve":
		return runServe(cfg, rest)
	case "export":
		return runExport(cfg, rest, out)
	case "export-all":
		return runExportAll(cfg, rest, out)
	case "practice":
		return runPractice(cfg, rest, out)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// withApp starts the app, runs fn and shuts everything down. SIGINT and
// SIGTERM cancel the context passed to fn.
func withApp(cfg *config.Config, fn func(ctx context.Context, a *App) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	if err := a.Startup(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

func runServe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	host := fs.String("host", cfg.Server.Host, "listen host")
	port := fs.Int("port", cfg.Server.Port, "listen port")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Server.Host = *host
	cfg.Server.Port = *port

	return withApp(cfg, func(ctx context.Context, a *App) error {
		return a.Serve(ctx)
	})
}

func runExport(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	section := fs.String("section", "", "section id, e.g. selenium-basics")
	formatName := fs.String("format", cfg.Export.DefaultFormat, "pptx, pdf, docx or xlsx")
	dir := fs.String("out", cfg.Export.OutputDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *section == "" {
		return errors.New("export: -section is required")
	}
	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	return withApp(cfg, func(ctx context.Context, a *App) error {
		res, err := a.exports.SaveSection(ctx, *section, format, *dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%d bytes)\n", res.Path, res.Size)
		return nil
	})
}

func runExportAll(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export-all", flag.ContinueOnError)
	formatName := fs.String("format", cfg.Export.DefaultFormat, "pptx, pdf, docx or xlsx")
	dir := fs.String("out", cfg.Export.OutputDir, "output directory")
	workers := fs.Int("workers", cfg.Export.Concurrency, "parallel exports")
	if err := fs.Parse(args); err != nil {
		return err
	}
	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	cfg.Export.Concurrency = *workers

	return withApp(cfg, func(ctx context.Context, a *App) error {
		res, err := a.exports.ExportAll(ctx, *dir, format)
		if res != nil {
			for _, f := range res.Files {
				fmt.Fprintf(out, "%s (%d bytes)\n", f.Path, f.Size)
			}
			for _, f := range res.Failures {
				fmt.Fprintf(out, "FAILED %s: %s\n", f.SectionID, f.Error)
			}
		}
		return err
	})
}

func runPractice(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("practice", flag.ContinueOnError)
	dir := fs.String("out", cfg.Export.OutputDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(cfg, func(ctx context.Context, a *App) error {
		path, err := a.exports.SavePracticePage(*dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, path)
		return nil
	})
}

// runCatalog needs no config: it only reads the embedded curriculum.
func runCatalog(out io.Writer) error {
	cat := catalog.Default()
	issues := cat.ValidateAll()

	for _, sec := range cat.Sections() {
		data, _ := cat.Lookup(sec.ID)
		fmt.Fprintf(out, "%2d  %-28s %-40s %2d slides\n", sec.Number, sec.ID, sec.Title, len(data.Slides))
	}

	if len(issues) == 0 {
		fmt.Fprintln(out, "catalog OK")
		return nil
	}

	ids := make([]string, 0, len(issues))
	for id := range issues {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	count := 0
	for _, id := range ids {
		for _, issue := range issues[id] {
			fmt.Fprintf(out, "%s: %s\n", id, issue.String())
			count++
		}
	}
	return fmt.Errorf("catalog has %d issue(s)", count)
}

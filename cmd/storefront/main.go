package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/storefront/internal/catalog"
	"github.com/mmcdole/storefront/internal/config"
	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/host"
	"github.com/mmcdole/storefront/internal/listview"
	"github.com/mmcdole/storefront/internal/log"
	"github.com/mmcdole/storefront/internal/store"
	"github.com/mmcdole/storefront/internal/tui"
	"github.com/mmcdole/storefront/internal/tui/styles"
	"github.com/mmcdole/storefront/internal/web"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

const usage = `Usage: storefront [flags] [command]

Commands:
  browse     terminal UI (default)
  serve      HTML front end
  snapshot   write the first page of every collection for host.mode=ssg
  init       write a default config file
  version    print version

Flags:
`

func main() {
	var (
		showVersion bool
		configPath  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	command := flag.Arg(0)
	if showVersion || command == "version" {
		fmt.Printf("storefront %s\n", Version)
		return
	}
	if command == "" {
		command = "browse"
	}

	if err := run(command, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command, configPath string) error {
	if command == "init" {
		path, err := config.SaveConfig(config.DefaultConfig(), "")
		if err != nil {
			return err
		}
		fmt.Printf("✓ Configuration written to %s\n", path)
		return nil
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting storefront", "version", Version, "command", command, "mode", cfg.Host.Mode)

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)

	switch command {
	case "browse":
		return runBrowse(cfg, client, logger)
	case "serve":
		return runServe(cfg, client, logger)
	case "snapshot":
		return runSnapshot(cfg, client, logger)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// openLoader builds the host loader, opening the snapshot store in ssg mode
func openLoader(cfg *config.Config, client *catalog.Client, logger *slog.Logger) (*host.Loader, func(), error) {
	var snapshots domain.SnapshotStore
	closeFn := func() {}

	if cfg.Host.Mode == config.HostModeSSG {
		s, err := store.NewSnapshotStore(cfg.Host.SnapshotPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open snapshot store: %w", err)
		}
		snapshots = s
		closeFn = func() { s.Close() }
	}

	loader := host.NewLoader(client, snapshots, cfg.Host.Mode, cfg.Catalog.PageSize, logger)
	return loader, closeFn, nil
}

func runBrowse(cfg *config.Config, client *catalog.Client, logger *slog.Logger) error {
	loader, closeFn, err := openLoader(cfg, client, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	start := tui.ParseScreen(cfg.UI.StartScreen)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return printFirstPages(os.Stdout, loader, cfg.Catalog.Timeout)
	}

	model := tui.NewModel(tui.Options{
		Loader:      loader,
		Logger:      logger,
		Timeout:     cfg.Catalog.Timeout,
		GridColumns: cfg.UI.GridColumns,
		StartScreen: start,
		HostLabel:   strings.ToUpper(string(cfg.Host.Mode)),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// printFirstPages writes a plain listing when stdout is not a terminal
func printFirstPages(w io.Writer, loader *host.Loader, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	products, err := loader.MountProducts(ctx)
	if err != nil {
		return err
	}
	defer products.Close()
	writeListing(w, listview.FromState(domain.CollectionProducts, products.State()))

	posts, err := loader.MountPosts(ctx)
	if err != nil {
		return err
	}
	defer posts.Close()
	writeListing(w, listview.FromState(domain.CollectionPosts, posts.State()))
	return nil
}

func writeListing(w io.Writer, p listview.Props) {
	fmt.Fprintf(w, "%s\n\n", p.Heading)
	for _, c := range p.Cards() {
		fmt.Fprintf(w, "  %-6s %s  %s\n", c.ID, c.Title, styles.Truncate(c.Summary, 60))
	}
	fmt.Fprintf(w, "\n%s\n\n", p.Controls().Label())
}

func runServe(cfg *config.Config, client *catalog.Client, logger *slog.Logger) error {
	loader, closeFn, err := openLoader(cfg, client, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	srv, err := web.NewServer(loader, cfg.Web.Addr, cfg.Catalog.Timeout, logger)
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving on %s (%s)\n", cfg.Web.Addr, cfg.Host.Mode)
	return srv.Start(ctx)
}

func runSnapshot(cfg *config.Config, client *catalog.Client, logger *slog.Logger) error {
	s, err := store.NewSnapshotStore(cfg.Host.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer s.Close()

	if err := buildWithSpinner(client, s, cfg.Catalog.PageSize, cfg.Catalog.Timeout*time.Duration(len(domain.Collections)), logger); err != nil {
		return err
	}

	fmt.Printf("✓ Snapshot written to %s\n", cfg.Host.SnapshotPath)
	return nil
}

// buildWithSpinner builds the snapshot with a visual spinner
func buildWithSpinner(client *catalog.Client, s domain.SnapshotStore, pageSize int, timeout time.Duration, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- host.Build(ctx, client, s, pageSize, domain.Collections, logger)
	}()

	frame := 0
	fmt.Printf("\r%s Building snapshot...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if errors.Is(err, domain.ErrFetchFailed) {
				return fmt.Errorf("catalog unavailable at %s: %w", client.BaseURL(), err)
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Building snapshot...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
		}
	}
}

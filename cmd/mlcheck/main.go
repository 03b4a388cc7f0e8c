package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/idilsaglam/mlcheck/internal/cli"
	"github.com/idilsaglam/mlcheck/internal/config"
	"github.com/idilsaglam/mlcheck/internal/storage"
	"github.com/idilsaglam/mlcheck/internal/store"
	"github.com/idilsaglam/mlcheck/internal/tui"
	"github.com/idilsaglam/mlcheck/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "mlcheck:", err)
		return 2
	}

	backend, closeBackend := openBackend(cfg, logger)
	defer closeBackend()

	s := store.Open(backend,
		store.WithDebounce(cfg.Debounce),
		store.WithLogger(logger),
	)
	defer s.Close()

	ui.SetTheme(s.State().Theme)

	app := &cli.App{Store: s, Backend: backend, RunTUI: tui.Run}
	return cli.Execute(app, os.Args[1:], os.Stdout, os.Stderr)
}

// openBackend picks the storage slot from config, degrading to the no-op
// backend when the chosen one cannot be opened.
func openBackend(cfg config.Config, logger *slog.Logger) (storage.Backend, func()) {
	dir := cfg.DataDir
	if dir == "" {
		dir = storage.DefaultDataDir()
	}
	switch cfg.Backend {
	case "bolt":
		bb, err := storage.OpenBolt(dir, logger)
		if err != nil {
			logger.Warn("bolt backend unavailable, running without persistence", "err", err)
			return storage.Nop{}, func() {}
		}
		return bb, func() { _ = bb.Close() }
	case "none":
		return storage.Nop{}, func() {}
	default:
		return storage.NewFileBackend(dir, logger), func() {}
	}
}

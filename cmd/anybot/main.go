// Command anybot watches a shared duty roster, notifies a chat about cell
// changes, posts a daily day/night digest, and applies operator edits sent
// as text commands.
//
// Usage:
//
//	anybot -config anybot.yaml             # run the daemon
//	anybot -config anybot.yaml -once       # run one diff cycle and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/St3r30X/any-bot/command"
	"github.com/St3r30X/any-bot/config"
	"github.com/St3r30X/any-bot/report"
	"github.com/St3r30X/any-bot/sheets"
	"github.com/St3r30X/any-bot/snapshot"
	"github.com/St3r30X/any-bot/telegram"
	"github.com/St3r30X/any-bot/watcher"
)

func main() {
	configPath := flag.String("config", "anybot.yaml", "path to the YAML config file")
	once := flag.Bool("once", false, "run a single diff cycle and exit")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *once); err != nil {
		logger.Error("anybot: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath string, once bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	svc, err := gridService(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := snapshotStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	bot := telegram.New(cfg.Telegram.Token,
		telegram.WithLogger(logger),
		telegram.WithTimeout(cfg.Telegram.Timeout))

	dir := report.Directory(cfg.Directory)
	proc := command.NewProcessor(svc, cfg.Editors, logger)

	w := watcher.New(svc, store, bot, proc,
		report.Changes{Dir: dir},
		report.Digest{Dir: dir, Tokens: report.DutyTokens{
			Day:   cfg.Duty.DayTokens,
			Night: cfg.Duty.NightTokens,
			Off:   cfg.Duty.OffTokens,
		}},
		watcher.Options{
			NotifyChat:   cfg.Telegram.NotifyChat,
			RichText:     cfg.Telegram.RichText,
			PollInterval: cfg.Schedule.PollInterval,
			DigestAt:     cfg.Schedule.DigestAt,
		},
		logger)

	if once {
		return w.RunCycle(ctx)
	}

	if cfg.StatusAddr != "" {
		go func() {
			logger.Info("anybot: status endpoint", "addr", cfg.StatusAddr)
			if err := http.ListenAndServe(cfg.StatusAddr, w.StatusHandler()); err != nil {
				logger.Error("anybot: status server stopped", "error", err)
			}
		}()
	}

	go bot.Poll(ctx, func(ctx context.Context, m telegram.Message) {
		w.HandleMessage(ctx, m.Chat, m.Sender, m.Text)
	})

	logger.Info("anybot: watching roster",
		"grid", cfg.Grid.Backend,
		"poll_interval", cfg.Schedule.PollInterval,
		"digest_at", cfg.Schedule.DigestAt)

	w.Run(ctx)
	return nil
}

func gridService(cfg *config.Config) (sheets.Service, error) {
	switch cfg.Grid.Backend {
	case "http":
		return sheets.NewClient(cfg.Grid.URL, sheets.WithTimeout(cfg.Grid.Timeout)), nil
	case "xlsx":
		return sheets.NewWorkbook(cfg.Grid.Path, cfg.Grid.Sheet), nil
	default:
		return nil, fmt.Errorf("anybot: unknown grid backend %q", cfg.Grid.Backend)
	}
}

func snapshotStore(cfg *config.Config) (snapshot.Store, func(), error) {
	switch cfg.Snapshot.Backend {
	case "file":
		return snapshot.NewFile(cfg.Snapshot.Path), func() {}, nil
	case "sqlite":
		s, err := snapshot.OpenSQLite(cfg.Snapshot.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("anybot: unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ganot/taskdeck/internal/board"
	"github.com/ganot/taskdeck/internal/config"
	"github.com/ganot/taskdeck/internal/gateway"
	"github.com/ganot/taskdeck/internal/notify"
	"github.com/ganot/taskdeck/internal/scope"
	"github.com/ganot/taskdeck/internal/session"
	"github.com/ganot/taskdeck/internal/teams"
	"github.com/ganot/taskdeck/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file when one is set and
	// are discarded otherwise.
	logWriter := os.Stderr
	if logPath := os.Getenv("TASKDECK_LOG_PATH"); logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				defer file.Close()
				logWriter = file
			}
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare credential store path", "error", err)
		os.Exit(1)
	}
	store, err := session.OpenSQLite(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open credential store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	switch cmd := argAt(1); cmd {
	case "login":
		if err := runLogin(store, argAt(2)); err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("credential saved")
	case "logout":
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "logout failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("credential cleared")
	case "":
		if err := runBoard(cfg, store, logger); err != nil {
			logger.Error("exited with error", "error", err)
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected login, logout, or no command)\n", cmd)
		os.Exit(1)
	}
}

func runBoard(cfg config.Config, store session.Store, logger *slog.Logger) error {
	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	client := gateway.NewClient(cfg.API.BaseURL, httpClient, session.TokenSource{Store: store}, logger)

	identity := session.NewProvider(store, client.Profile, logger)
	notices := notify.NewQueue()
	ctrl := board.NewController(client.Tasks, client.Teams, identity, notices, logger)
	teamsSvc := teams.NewService(client.Teams, identity, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()

	filter := scope.NewContext("taskdeck:///tasks")
	ctrl.BindScope(ctx, filter)

	logger.Info("starting board", "api", cfg.API.BaseURL)
	return tui.Run(ctx, ctrl, filter, teamsSvc)
}

func runLogin(store session.Store, token string) error {
	if token == "" {
		fmt.Fprint(os.Stderr, "token: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("empty token")
	}
	return store.Set(token)
}

func argAt(i int) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return ""
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

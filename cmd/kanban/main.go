package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/Martinez1337/go-kanban/internal/cli"
	"github.com/Martinez1337/go-kanban/internal/cli/formatter"
	"github.com/Martinez1337/go-kanban/internal/db"
	"github.com/Martinez1337/go-kanban/internal/manager"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := openStore()
	if err != nil {
		return err
	}

	// Styled output only on a real terminal.
	formatter.Plain = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

	app := &cli.App{Manager: store, Logger: logger}
	return cli.NewRootCmd(app).Execute()
}

// openStore picks the persistence backend. KANBAN_DB selects SQLite,
// otherwise KANBAN_FILE or the default CSV path under the home
// directory is used.
func openStore() (manager.TaskManager, error) {
	if dbPath := os.Getenv("KANBAN_DB"); dbPath != "" {
		conn, err := db.OpenDB(dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return manager.LoadSQLiteTaskManager(conn)
	}

	filePath := os.Getenv("KANBAN_FILE")
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		filePath = filepath.Join(home, ".kanban", "tasks.csv")
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return manager.LoadFileBackedTaskManager(filePath)
}

package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"smarttodo-backend/internal/ai"
	"smarttodo-backend/internal/config"
	"smarttodo-backend/internal/db"
	"smarttodo-backend/internal/enrich"
	"smarttodo-backend/internal/store"
)

var userID int64

func main() {
	rootCmd := &cobra.Command{
		Use:   "todoctl",
		Short: "Personal task manager with AI enrichment",
	}
	rootCmd.PersistentFlags().Int64VarP(&userID, "user", "u", 1, "user id to act as")

	rootCmd.AddCommand(initDBCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(contextCmd())
	rootCmd.AddCommand(categoryCmd())
	rootCmd.AddCommand(enrichCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds everything a command needs once the config and DB are up.
type app struct {
	cfg      *config.Config
	db       *sql.DB
	store    *store.Store
	enricher *enrich.Enricher
	log      *slog.Logger
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg.LogLevel)

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	st := store.New(database, log)

	// No credential configured means the engine runs in deterministic
	// fallback mode instead of calling out.
	var completer ai.Completer
	if cfg.OpenAIKey != "" {
		completer = ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.AITimeout())
	}
	engine := ai.NewEngine(completer, cfg.AITimeout(), log)

	return &app{
		cfg:      cfg,
		db:       database,
		store:    st,
		enricher: enrich.New(st, engine, log),
		log:      log,
	}, nil
}

func (a *app) Close() {
	a.db.Close()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Init(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("database initialized")
			return nil
		},
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

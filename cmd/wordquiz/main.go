package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/wordquiz/internal/config"
	"github.com/pavelanni/wordquiz/internal/handler"
	appI18n "github.com/pavelanni/wordquiz/internal/i18n"
	"github.com/pavelanni/wordquiz/internal/model"
	"github.com/pavelanni/wordquiz/internal/quiz"
	"github.com/pavelanni/wordquiz/internal/store"
)

//go:generate templ generate -path ../../internal/handler/views

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "wordquiz",
		Short:        "Personal vocabulary quiz",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("db", config.DefaultDB, "SQLite database path")
	pf.StringP("lang", "l", config.DefaultLang, "Interface language (en, ja)")
	pf.Int("history-limit", model.DefaultHistoryLimit, "Number of recent results to show")
	pf.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.String("log-format", config.DefaultLogFormat, "Log format (text, json)")

	serve := serveCmd()
	root.AddCommand(serve, addCmd(), importCmd(), listCmd(), deleteCmd(), quizCmd(), historyCmd(), exportCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `wordquiz --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringP("addr", "a", ":8080", "HTTP listen address")
	return cmd
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("WORDQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("wordquiz")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/wordquiz")
	v.AddConfigPath("/etc/wordquiz")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// setup loads and validates the shared settings, installs the logger and
// loads the message catalogs.
func setup(cmd *cobra.Command) (*viper.Viper, config.Config, error) {
	v := viperForCmd(cmd)
	cfg, err := config.Load(v)
	if err != nil {
		return nil, config.Config{}, err
	}
	config.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err := appI18n.Init(cfg.Lang); err != nil {
		return nil, config.Config{}, fmt.Errorf("init i18n: %w", err)
	}
	return v, cfg, nil
}

// openStore runs setup and opens the database.
func openStore(cmd *cobra.Command) (*viper.Viper, config.Config, *store.Store, error) {
	v, cfg, err := setup(cmd)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	db, err := store.New(cfg.DB)
	if err != nil {
		return nil, config.Config{}, nil, fmt.Errorf("open database: %w", err)
	}
	return v, cfg, db, nil
}

func newEngine(db *store.Store, lang string) *quiz.Engine {
	return quiz.NewEngine(db, quiz.WithPrompter(appI18n.Prompter(appI18n.Context(lang))))
}

func runServe(cmd *cobra.Command, _ []string) error {
	v, cfg, db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	h := handler.New(db, newEngine(db, cfg.Lang), cfg.HistoryLimit)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(cfg.Lang))
	h.Routes(r)

	addr := v.GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr, "db", cfg.DB, "lang", cfg.Lang)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

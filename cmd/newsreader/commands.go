package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"newsreader/internal/app"
	"newsreader/internal/tui"
	"newsreader/internal/web"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the news in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// The screen belongs to bubbletea; logs go to a file or nowhere.
		var logOut io.Writer = io.Discard
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}
		logger := newLogger(logOut)

		svc := newServices(cfg, logger)
		if err := svc.withEngagement(cfg, logger); err != nil {
			return err
		}
		defer svc.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		model := tui.NewModel(ctx, svc.newApp(cfg, logger), logger)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	},
}

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reader as a web page",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr = serveAddr
		}
		logger := newLogger(os.Stdout)

		svc := newServices(cfg, logger)
		if err := svc.withEngagement(cfg, logger); err != nil {
			return err
		}
		defer svc.close()

		handler, err := web.NewServer(func() *app.App { return svc.newApp(cfg, logger) }, cfg.SessionTTL, logger)
		if err != nil {
			return fmt.Errorf("failed to init web server: %w", err)
		}

		// Root context cancelled on SIGINT/SIGTERM
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go handler.RunSweeper(ctx, time.Minute)

		go func() {
			logger.Printf("HTTP server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("HTTP server error: %v", err)
				stop()
			}
		}()

		<-ctx.Done()
		logger.Println("shutdown signal received, shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("HTTP server shutdown error: %v", err)
		}
		logger.Println("shutdown complete")
		return nil
	},
}

var (
	listCategory string
	listFormat   string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the current feed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("limit") {
			cfg.ListLimit = listLimit
		}
		printer, err := listPrinter(listFormat)
		if err != nil {
			return err
		}
		logger := newLogger(io.Discard)

		svc := newServices(cfg, logger)

		ctx, cancel := commandContext(cmd, cfg.Timeout)
		defer cancel()

		articles, err := svc.news.Articles(ctx, listCategory)
		if err != nil {
			return fmt.Errorf("list articles: %w", err)
		}

		total := len(articles)
		if cfg.ListLimit > 0 && cfg.ListLimit < total {
			articles = articles[:cfg.ListLimit]
		}
		return printer(cmd.OutOrStdout(), articles, total)
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print article counts per category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		svc := newServices(cfg, newLogger(io.Discard))

		ctx, cancel := commandContext(cmd, cfg.Timeout)
		defer cancel()

		counts, err := svc.news.Count(ctx)
		if err != nil {
			return fmt.Errorf("count articles: %w", err)
		}
		printCounts(cmd.OutOrStdout(), counts)
		return nil
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ask the news service to fetch fresh articles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// Ingestion runs server side and can take longer than a normal request.
		cfg.Timeout = 0

		svc := newServices(cfg, newLogger(io.Discard))

		ctx, cancel := commandContext(cmd, cfg.Timeout)
		defer cancel()

		res, err := svc.news.TriggerFetch(ctx)
		if err != nil {
			return fmt.Errorf("trigger fetch: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (stored %d of %d)\n", res.Message, res.ArticlesStored, res.ArticlesAttempted)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides HTTP_ADDR)")

	listCmd.Flags().StringVar(&listCategory, "category", "", "only this category")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, json, compact")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum articles to print (0 for all)")
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"newsreader/internal/app"
	"newsreader/internal/config"
	"newsreader/internal/engagement"
	"newsreader/internal/newsapi"
	"newsreader/internal/userapi"
)

var (
	configFile string
	userURL    string
	newsURL    string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "newsreader",
	Short: "Read, filter and engage with the news feed",
	Long: `A client for the news service: browse articles in the terminal or a
browser, like and share them, and get personalized recommendations.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (overrides "+config.ConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&userURL, "user-url", "", "user service base URL")
	rootCmd.PersistentFlags().StringVar(&newsURL, "news-url", "", "news service URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "HTTP client timeout")

	rootCmd.AddCommand(tuiCmd, serveCmd, listCmd, countCmd, ingestCmd)
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[newsreader] ", log.LstdFlags|log.Lshortfile)
}

// loadConfig applies command line flags on top of file and env settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("user-url") {
		cfg.UserServiceURL = userURL
	}
	if flags.Changed("news-url") {
		cfg.NewsAPIURL = newsURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	return cfg, nil
}

type services struct {
	http      *http.Client
	news      *newsapi.Client
	users     *userapi.Client
	publisher *engagement.Publisher
	close     func()
}

// newServices wires the remote clients. Nothing is dialled here; commands
// that publish engagement call withEngagement.
func newServices(cfg config.Config, logger *log.Logger) *services {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	logger.Printf("news service %s, user service %s", cfg.NewsAPIURL, cfg.UserServiceURL)
	return &services{
		http:  httpClient,
		news:  newsapi.NewClient(cfg.NewsAPIURL, httpClient),
		users: userapi.NewClient(cfg.UserServiceURL, httpClient),
		close: func() {},
	}
}

// withEngagement sets up the engagement transport.
func (s *services) withEngagement(cfg config.Config, logger *log.Logger) error {
	var sink engagement.Sink
	switch cfg.EngagementTransport {
	case config.TransportAMQP:
		rabbit, err := engagement.NewRabbitSink(cfg.RabbitURI, cfg.RabbitExchange, cfg.RabbitRoutingKey, logger)
		if err != nil {
			return fmt.Errorf("failed to init rabbit publisher: %w", err)
		}
		sink = rabbit
		s.close = rabbit.Close
	default:
		sink = engagement.NewHTTPSink(cfg.Engagement(), s.http)
	}
	s.publisher = engagement.NewPublisher(sink, logger)

	logger.Printf("engagement via %s", cfg.EngagementTransport)
	return nil
}

func (s *services) newApp(cfg config.Config, logger *log.Logger) *app.App {
	return app.New(s.news, s.users, s.publisher, cfg.FallbackDelay, logger)
}

func commandContext(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), d)
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	website "github.com/unobits/website"
	"github.com/unobits/website/internal/client"
	"github.com/unobits/website/internal/contact"
	"github.com/unobits/website/internal/database"
	"github.com/unobits/website/internal/logger"
	"github.com/unobits/website/internal/origin"
	"github.com/unobits/website/internal/server"
	"github.com/unobits/website/internal/site"
	"github.com/unobits/website/internal/version"
)

var originDocument string

func main() {
	cmd := &cobra.Command{
		Use:   "unobits-web",
		Short: "unobits website",
		Long:  `Serves the unobits website and passes sign in, sign up and session requests to the unobits application.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	cmd.Version = version.Get().String()
	cmd.Flags().StringVar(&originDocument, "origin-document", "", "HTML file declaring the application origin (<meta name=\""+origin.MetaName+"\">), used when APP_ORIGIN is not set")

	cmd.AddCommand(originCmd(), migrateCmd())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, corsConfigs, err := website.NewServerConfig()
	if err != nil {
		return err
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	slog.SetDefault(appLogger)

	appOrigin, err := resolveOrigin(cfg.AppOrigin, originDocument)
	if err != nil {
		return err
	}

	appLogger.Info("starting website", slog.String("version", version.Get().Version))
	appLogger.Info("using unobits application", slog.String("origin", appOrigin))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	renderer, err := site.NewRenderer(appOrigin, cfg.PublicBaseURL)
	if err != nil {
		return err
	}

	validator, err := contact.NewValidator()
	if err != nil {
		return err
	}

	apiClient := client.NewClient(appOrigin, &http.Client{Timeout: cfg.APITimeout})

	srv := server.NewServer(cfg, corsConfigs, renderer, apiClient, validator, store, appLogger)

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("website server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("website shutdown complete")
	return nil
}

// resolveOrigin returns the application origin: APP_ORIGIN when set, then the origin declared in the document, then origin.Fallback
func resolveOrigin(configured, documentPath string) (string, error) {
	if configured != "" || documentPath == "" {
		return origin.Resolve(configured), nil
	}

	f, err := os.Open(documentPath)
	if err != nil {
		return "", fmt.Errorf("could not open origin document: %w", err)
	}
	defer f.Close()

	return origin.FromDocument(f), nil
}

// openStore connects to the contact database when DATABASE_URL is set, otherwise submissions are only logged
func openStore(ctx context.Context, cfg *website.ServerEnvironment, appLogger *slog.Logger) (contact.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		appLogger.Warn("DATABASE_URL not set - contact submissions will be logged but not stored")
		return contact.NewLogStore(appLogger), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, website.DatabasePingTimeout)
	defer cancel()

	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	appLogger.Info("connected to PostgreSQL")

	return contact.NewPostgresStore(pool), pool.Close, nil
}

func originCmd() *cobra.Command {
	var documentPath, pageURL string

	cmd := &cobra.Command{
		Use:   "origin",
		Short: "Print the application origin",
		Long: `Print the application origin declared by a page (--url) or an HTML file (--document).
Without flags the APP_ORIGIN environment variable is used. ` + origin.Fallback + ` is printed when no origin is declared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if documentPath != "" && pageURL != "" {
				return fmt.Errorf("use either --document or --url, not both")
			}

			if pageURL != "" {
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()
				fmt.Fprintln(cmd.OutOrStdout(), origin.FromURL(ctx, &http.Client{Timeout: 10 * time.Second}, pageURL))
				return nil
			}

			configured := os.Getenv("APP_ORIGIN")
			if documentPath != "" {
				configured = ""
			}
			resolved, err := resolveOrigin(configured, documentPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return nil
		},
	}

	cmd.Flags().StringVar(&documentPath, "document", "", "HTML file to read")
	cmd.Flags().StringVar(&pageURL, "url", "", "page to fetch")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the contact store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := website.NewServerConfig()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL must be set to run migrations")
			}

			appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			pool, err := database.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.Migrate(ctx, pool, appLogger); err != nil {
				return err
			}
			appLogger.Info("migrations complete")
			return nil
		},
	}
}

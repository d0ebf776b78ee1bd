package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopping-mall/mall-api/initializers"
	"github.com/shopping-mall/mall-api/payments"
	"github.com/shopping-mall/mall-api/routes"
	"github.com/shopping-mall/mall-api/services"
	"github.com/shopping-mall/mall-api/utils"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. The schema is migrated before the server
starts listening, and SIGINT/SIGTERM shut it down gracefully.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func buildDependencies(ctx context.Context, cfg *initializers.Config, stores *initializers.Stores) (routes.Dependencies, error) {
	var images services.ImageUploader
	store, err := utils.NewImageStore(ctx, cfg.S3Bucket)
	if err != nil {
		return routes.Dependencies{}, err
	}
	if store != nil {
		images = store
	} else {
		slog.Warn("AWS_S3_BUCKET is not set, product image uploads are disabled")
	}

	var notifier services.OrderNotifier
	mailer, err := utils.NewMailer(utils.MailConfig{
		SMTPAddress: cfg.SMTPAddress,
		SMTPHost:    cfg.SMTPHost,
		FromEmail:   cfg.FromEmail,
		Password:    cfg.FromEmailPassword,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}
	if mailer.Enabled() {
		notifier = mailer
	}

	verifier := payments.NewPortOneVerifier(payments.PortOneConfig{
		APIKey:    cfg.PortOneAPIKey,
		APISecret: cfg.PortOneAPISecret,
		BaseURL:   cfg.PortOneBaseURL,
		Timeout:   cfg.PaymentTimeout,
	})
	if !verifier.Configured() {
		slog.Warn("PortOne REST API keys are not set, payment verification will be skipped")
	}

	pricing := services.PricingPolicy{
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
	}

	return routes.Dependencies{
		Tokens:   utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn),
		Users:    services.NewUserService(stores.Users),
		Products: services.NewProductService(stores.Products, images),
		Carts:    services.NewCartService(stores.Carts, stores.Products),
		Orders:   services.NewOrderService(stores.Orders, stores.Carts, stores.Users, verifier, notifier, pricing),
		DB:       stores.DB,
	}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, stores, err := bootstrap()
	if err != nil {
		return err
	}
	defer stores.Close()

	if err := stores.Migrate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := buildDependencies(ctx, cfg, stores)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewServer(deps, cfg.AllowedOrigins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed to listen and serve: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("Server exited gracefully.")
	return nil
}

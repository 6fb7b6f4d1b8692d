package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swaglabs/shopcheck/internal/config"
	"github.com/swaglabs/shopcheck/internal/handlers"
	"github.com/swaglabs/shopcheck/internal/models"
	"github.com/swaglabs/shopcheck/internal/services"
	"go.uber.org/zap"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig config.ServerConfig
	Logger       *zap.Logger

	LoginHandler               http.Handler
	InventoryHandler           http.Handler
	ProductHandler             http.Handler
	CartHandler                http.Handler
	CartAddHandler             http.Handler
	CartRemoveHandler          http.Handler
	CheckoutInformationHandler http.Handler
	CheckoutOverviewHandler    http.Handler
	FinishHandler              http.Handler
	ConfirmationHandler        http.Handler
	LogoutHandler              http.Handler

	// RequireSession guards every page behind the login. A nil value
	// leaves them open, which only tests want.
	RequireSession func(http.Handler) http.Handler
}

// BuildServerDependencies wires the storefront: the default catalog and
// accounts, in-process sessions and orders stored in orderRepo.
func BuildServerDependencies(cfg config.ServerConfig, orderRepo services.OrderRepository, logger *zap.Logger) (ServerDependencies, error) {
	deps := ServerDependencies{
		ServerConfig: cfg,
		Logger:       logger,
	}

	catalog := models.DefaultCatalog()
	auth := services.NewAuthService(models.DefaultAccounts())
	sessions := services.NewSessionService(catalog, cfg.SessionIdleTimeout)
	orders := services.NewOrderService(orderRepo)

	deps.RequireSession = func(next http.Handler) http.Handler {
		return handlers.RequireSession(sessions, next)
	}

	notFound, err := handlers.NewNotFoundHandler(logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create not-found handler: %w", err)
	}

	if deps.LoginHandler, err = handlers.NewLoginHandler(auth, sessions, cfg.GlitchDelay, notFound, logger); err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	if deps.InventoryHandler, err = handlers.NewInventoryHandler(catalog, logger); err != nil {
		return deps, fmt.Errorf("failed to create inventory handler: %w", err)
	}
	if deps.ProductHandler, err = handlers.NewProductHandler(catalog, notFound, logger); err != nil {
		return deps, fmt.Errorf("failed to create product handler: %w", err)
	}
	if deps.CartHandler, err = handlers.NewCartHandler(catalog, logger); err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	if deps.CheckoutInformationHandler, err = handlers.NewCheckoutInformationHandler(sessions, logger); err != nil {
		return deps, fmt.Errorf("failed to create checkout handler: %w", err)
	}
	if deps.CheckoutOverviewHandler, err = handlers.NewCheckoutOverviewHandler(catalog, logger); err != nil {
		return deps, fmt.Errorf("failed to create overview handler: %w", err)
	}
	if deps.ConfirmationHandler, err = handlers.NewConfirmationHandler(orders, logger); err != nil {
		return deps, fmt.Errorf("failed to create confirmation handler: %w", err)
	}

	deps.CartAddHandler = handlers.NewCartActionHandler(handlers.CartAdd, sessions, logger)
	deps.CartRemoveHandler = handlers.NewCartActionHandler(handlers.CartRemove, sessions, logger)
	deps.FinishHandler = handlers.NewFinishHandler(catalog, sessions, orders, logger)
	deps.LogoutHandler = handlers.NewLogoutHandler(sessions, logger)

	return deps, nil
}

// RunServe starts the storefront and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.Logger)
}

// NewRouter maps the storefront paths onto the handlers in deps
func NewRouter(deps ServerDependencies) http.Handler {
	guard := deps.RequireSession
	if guard == nil {
		guard = func(h http.Handler) http.Handler { return h }
	}

	mux := http.NewServeMux()
	mux.Handle("/", deps.LoginHandler)
	mux.Handle("/inventory.html", guard(deps.InventoryHandler))
	mux.Handle("/inventory-item.html", guard(deps.ProductHandler))
	mux.Handle("/cart.html", guard(deps.CartHandler))
	mux.Handle("/cart/add", guard(deps.CartAddHandler))
	mux.Handle("/cart/remove", guard(deps.CartRemoveHandler))
	mux.Handle("/checkout-step-one.html", guard(deps.CheckoutInformationHandler))
	mux.Handle("/checkout-step-two.html", guard(deps.CheckoutOverviewHandler))
	mux.Handle("/checkout/finish", guard(deps.FinishHandler))
	mux.Handle("/checkout-complete.html", guard(deps.ConfirmationHandler))
	mux.Handle("/logout", deps.LogoutHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, logger *zap.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, logger)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logger.Info("Shutting down server", zap.String("signal", sig.String()))

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// Force close the server after timeout
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info("Server stopped")
	return nil
}

package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayash-Bera/highlights/internal/api"
	"github.com/Ayash-Bera/highlights/internal/api/handlers"
	"github.com/Ayash-Bera/highlights/internal/health"
	"github.com/Ayash-Bera/highlights/internal/middleware"
	"github.com/Ayash-Bera/highlights/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the question box in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				opts.cfg.Server.Port = port
			}
			return serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, opts *options) error {
	cfg, logger := opts.cfg, opts.logger

	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	store := session.NewStore(opts.client(), cfg.Session.TTL, cfg.Session.TTL/2)
	checker := health.NewHealthChecker(cfg.API.BaseURL, store.Len, logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute)
	defer limiter.Stop()

	handler := handlers.NewChatHandler(store, checker, cfg.Session.TTL, logger)
	router := api.NewRouter(handler, limiter, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"api_base": cfg.API.BaseURL,
		}).Info("Starting highlights web UI")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down highlights web UI")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

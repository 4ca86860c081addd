package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antika-pos/config"
	"antika-pos/handlers"
	"antika-pos/middleware"
	"antika-pos/routes"
	"antika-pos/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type ServeOptions struct {
	*RootOptions
	Port string
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the REST API under /api.

The store is migrated on start. With SEED=true an empty database is loaded
with the starter menu, staff and tables. The cash register is closed daily
on CASH_CLOSE_SCHEDULE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Port, "port", rootOpts.Config.Port, "listen port")
	return cmd
}

func serve(ctx context.Context, opts *ServeOptions) error {
	cfg := opts.Config
	log := config.NewLogger(os.Stderr, opts.logLevel(), cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	db, err := opts.open()
	if err != nil {
		return err
	}
	defer config.Close(db)
	log.Info("database ready", "driver", opts.DBDriver)

	if cfg.Seed {
		if _, err := config.Seed(ctx, db, log); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	var notifier services.Notifier = services.NewNopNotifier(log)
	if cfg.SMSEnabled() {
		notifier = services.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, log)
		log.Info("sms notifications enabled")
	}

	h := handlers.New(db, middleware.NewAuth(cfg.JWTSecret, cfg.JWTExpiry), notifier, log)

	if cfg.CashCloseSchedule != "" {
		scheduler := services.NewCashScheduler(h.Cash, log)
		if err := scheduler.Start(cfg.CashCloseSchedule); err != nil {
			return err
		}
		defer scheduler.Stop()
	} else {
		log.Info("scheduled cash close disabled")
	}

	srv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           routes.NewRouter(h, cfg.CORSOrigins, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
		return err
	}
	return nil
}

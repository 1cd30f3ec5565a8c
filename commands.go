package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	intconfig "backoffice/internal/config"
	"backoffice/internal/db"
	router "backoffice/internal/http"
	"backoffice/internal/http/handlers"
	"backoffice/internal/services"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Travel agency back office",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "init-days <itineraryID>",
			Short: "Create the missing days of an itinerary and print the report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return withDB(cmd.Context(), func(ctx context.Context) error {
					report, err := services.DayService{RequestID: uuid.NewString()}.InitializeDays(ctx, id)
					if err != nil {
						return err
					}
					if err := printJSON(report); err != nil {
						return err
					}
					if report.HasFailures() {
						return fmt.Errorf("%d day(s) failed, rerun to retry", len(report.Failed))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "ledger <bookingID>",
			Short: "Print the reconciled payment ledger of a booking",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return withDB(cmd.Context(), func(ctx context.Context) error {
					view, err := services.LedgerService{RequestID: uuid.NewString()}.BookingLedger(ctx, id)
					if err != nil {
						return err
					}
					return printJSON(view)
				})
			},
		},
	)
	return root
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// setup loads the environment, configures logging and opens the database.
func setup(ctx context.Context) (intconfig.Env, error) {
	env := intconfig.LoadEnv()
	if err := utils.ConfigureLogger(utils.LogConfig{Level: env.LogLevel, Format: env.LogFormat, File: env.LogFile}); err != nil {
		return env, fmt.Errorf("configure logger: %w", err)
	}
	conn, err := intconfig.ConnectDB(env)
	if err != nil {
		return env, err
	}
	created, err := db.EnsureSchema(ctx, conn)
	if err != nil {
		intconfig.CloseDB()
		return env, fmt.Errorf("ensure schema: %w", err)
	}
	if len(created) > 0 {
		utils.Logger().WithField("tables", created).Info("created missing tables")
	}
	return env, nil
}

func withDB(ctx context.Context, fn func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := setup(ctx); err != nil {
		return err
	}
	defer intconfig.CloseDB()
	return fn(ctx)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer intconfig.CloseDB()

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	handlers.Configure(handlers.Options{
		JWTSecret:       []byte(env.JWTSecret),
		Settings:        services.NewSettingsCache(nil),
		DefaultPageSize: env.DefaultPageSize,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router.NewRouter(env),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger().Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}

	utils.Logger().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	utils.Logger().Info("server stopped")
	return nil
}

package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/isometry/lw-quarantine-app/internal/config"
	"github.com/spf13/cobra"
)

func cmdService() *cobra.Command {
	return &cobra.Command{
		Use:     "service",
		Short:   "Serve the quarantine webhook over HTTP",
		Aliases: []string{"s", "serve", "standalone", "server"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runService(cmd)
		},
	}
}

func runService(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	logger := modeLogger(config.ModeService)
	logger.Info("Spawning...")

	rtm, err := setup(ctx, logger)
	if err != nil {
		return err
	}

	logger.Debug("Creating HTTP server...")
	h := http.NewServeMux()
	h.HandleFunc(config.Service.Path, rtm.ServeHTTP)

	s := &http.Server{
		Handler:      h,
		Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
		WriteTimeout: config.Service.Timeout,
		ReadTimeout:  config.Service.Timeout,
		IdleTimeout:  config.Service.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
		errCh <- s.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

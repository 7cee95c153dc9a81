package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Raswanth-RM/Transaction-Monitoring/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transaction monitoring HTTP server",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := newLogger(cfg)

		m, store, err := initMonitor(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if cfg.Server.Mode == "debug" {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		apiServer := server.New(m, logger, server.WithMaxUploadSize(cfg.Server.MaxUploadSize))

		readTimeout, _ := time.ParseDuration(cfg.Server.ReadTimeout)
		if readTimeout == 0 {
			readTimeout = 30 * time.Second
		}
		writeTimeout, _ := time.ParseDuration(cfg.Server.WriteTimeout)
		if writeTimeout == 0 {
			writeTimeout = 60 * time.Second
		}

		srv := &http.Server{
			Addr:         cfg.Server.Listen,
			Handler:      apiServer.Handler(),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server started", "listen", cfg.Server.Listen)
			errCh <- srv.ListenAndServe()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

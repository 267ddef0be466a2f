package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ilsalary/net-salary-calculator/internal/ruletable"
	"github.com/ilsalary/net-salary-calculator/internal/server"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve calculations and rule tables over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().Int("port", 0, "listen port (default: http.port setting or PORT)")
	cmd.Flags().String("rules", "", "directory of rule tables layered over the built-in ones")
	cmd.Flags().Bool("watch", false, "reload rule tables when files in the rules directory change")
	cmd.Flags().Bool("debug", false, "development logging at debug level")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		settings.HTTP.Port = port
	}
	if dir, _ := cmd.Flags().GetString("rules"); dir != "" {
		settings.RulesDir = dir
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		settings.WatchRules = true
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	debugFlag, _ := cmd.Flags().GetBool("debug")
	logger, err := newLogger(settings, debugFlag)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	holder, err := ruletable.NewHolder(settings.RulesDir, logger.Named("rules"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if settings.WatchRules && settings.RulesDir != "" {
		go func() {
			if err := holder.Watch(ctx, nil); err != nil {
				logger.Error("rule watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := server.New(server.Options{Rules: holder, Logger: logger, TaxYear: settings.TaxYear})
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(settings.HTTP.Address())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.String("port", strconv.Itoa(settings.HTTP.Port)))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

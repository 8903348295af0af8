package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"despesas/internal/backend"
	"despesas/internal/cli"
	"despesas/internal/config"
	"despesas/internal/export"
	"despesas/internal/log"
	"despesas/internal/services"
)

func main() {
	cli.LoadEnvFile()

	// Configuration errors are reported before the configured logger exists.
	cfg := cli.LoadAndValidateConfig(log.New(log.DefaultConfig()))
	logger := cli.SetupLogger(cfg).WithComponent(log.ComponentApp)

	if err := run(cfg, logger); err != nil {
		logger.Error("Application failed", log.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := cli.ShutdownContext(context.Background(), logger)
	defer stop()

	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	be, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		return fmt.Errorf("create backend: %w", err)
	}
	defer func() {
		if err := be.Cleanup(); err != nil {
			logger.Warn("Cleanup failed", log.FieldError, err)
		}
	}()

	var publisher services.EventPublisher
	if be.Publisher != nil {
		publisher = be.Publisher
	}

	expenses := services.NewExpenseService(be.Store, publisher, logger)
	reports := services.NewReportService(be.Store, logger)
	exporter, err := services.NewExportService(be.Store, export.Format(cfg.ExportFormat), logger)
	if err != nil {
		return err
	}

	menu := cli.NewMenu(os.Stdin, os.Stdout, expenses, reports, exporter, cli.MenuOptions{
		ExportPath:   cfg.ExportPath,
		ExportFormat: cfg.ExportFormat,
	}, logger)

	logger.Info("Starting expense ledger",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend,
		log.FieldFormat, cfg.ExportFormat,
		"amqp_enabled", be.Publisher != nil)

	// Leaving the menu cancels the group, which drains and stops the publisher.
	g, gctx := errgroup.WithContext(ctx)
	loopCtx, leave := context.WithCancel(gctx)
	g.Go(func() error {
		defer leave()
		return menu.Run(loopCtx)
	})
	if be.Publisher != nil {
		g.Go(func() error {
			return be.Publisher.Run(loopCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Expense ledger stopped", log.FieldOperation, log.OpShutdown)
	return nil
}

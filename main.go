package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"vat-engine/internal/config"
	"vat-engine/internal/engine"
	"vat-engine/internal/grpcapi"
	"vat-engine/internal/handler"
	"vat-engine/internal/problem"
	"vat-engine/internal/telemetry"
	"vat-engine/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vat engine: %v\n", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(os.Stdout, cfg.LogFormat, cfg.LogLevel, cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.OTelEndpoint, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush traces", slog.Any("error", err))
		}
	}()

	eng := engine.New(engine.WithValidator(validation.New(validation.WithAggregate(cfg.AggregateDiagnostics))))
	mapper := problem.NewMapper(logger)

	httpServer := handler.NewServer(handler.New(eng, mapper, logger), cfg)

	var grpcLis net.Listener
	if cfg.GRPCEnabled {
		grpcLis, err = net.Listen("tcp", cfg.GRPCAddr())
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("vat engine listening", slog.String("transport", "http"), slog.String("addr", cfg.HTTPAddr()))
		if err := httpServer.ListenAndServe(cfg.HTTPAddr()); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.ShutdownWithContext(shutdownCtx)
	})

	if grpcLis != nil {
		grpcServer := grpcapi.NewGRPCServer(grpcapi.NewServer(eng, mapper, logger))

		g.Go(func() error {
			logger.Info("vat engine listening", slog.String("transport", "grpc"), slog.String("addr", cfg.GRPCAddr()))
			if err := grpcServer.Serve(grpcLis); err != nil {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			grpcServer.GracefulStop()
			return nil
		})
	}

	err = g.Wait()
	logger.Info("vat engine stopped")
	return err
}

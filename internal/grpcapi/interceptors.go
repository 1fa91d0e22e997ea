package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"vat-engine/internal/telemetry"
)

// CorrelationMetadataKey carries the correlation id in request and response
// headers.
const CorrelationMetadataKey = "x-correlation-id"

func (s *Server) correlate(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var supplied string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(CorrelationMetadataKey); len(v) > 0 {
			supplied = v[0]
		}
	}
	id := telemetry.NewCorrelationID(supplied)
	if err := grpc.SetHeader(ctx, metadata.Pairs(CorrelationMetadataKey, id)); err != nil {
		s.logger.WarnContext(ctx, "set correlation header", slog.Any("error", err))
	}
	return handler(telemetry.WithCorrelationID(ctx, id), req)
}

func (s *Server) logCalls(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	s.logger.InfoContext(ctx, "rpc received", slog.String("method", info.FullMethod))
	s.logPayload(ctx, "rpc request", req)

	resp, err := handler(ctx, req)

	if err == nil {
		s.logPayload(ctx, "rpc response", resp)
	}
	s.logger.InfoContext(ctx, "rpc completed",
		slog.String("method", info.FullMethod),
		slog.String("code", status.Code(err).String()),
		slog.Duration("duration", time.Since(start)),
	)
	return resp, err
}

func (s *Server) logPayload(ctx context.Context, msg string, v any) {
	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.logger.DebugContext(ctx, msg, slog.String("body", string(body)))
}

// mapErrors renders every handler error through the problem mapper and
// returns the matching status. Cancellation keeps its own codes.
func (s *Server) mapErrors(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, status.FromContextError(err).Err()
	}
	if _, ok := status.FromError(err); ok {
		return nil, err
	}
	return nil, ToStatus(s.mapper.Map(ctx, err, info.FullMethod)).Err()
}

func (s *Server) recoverPanics(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return handler(ctx, req)
}

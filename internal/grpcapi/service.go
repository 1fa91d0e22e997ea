// Package grpcapi exposes the calculation engine as a gRPC service using a
// JSON codec.
package grpcapi

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"vat-engine/internal/apperr"
	"vat-engine/internal/model"
	"vat-engine/internal/problem"
)

const (
	ServiceName     = "vatcalculator.v1.VatCalculator"
	CalculateMethod = "/" + ServiceName + "/Calculate"
)

// Processor runs a calculation request.
type Processor interface {
	Process(ctx context.Context, req *model.CalculationRequest) (model.CalculationResult, error)
}

// CalculatorServer is the server API of the VatCalculator service.
type CalculatorServer interface {
	Calculate(ctx context.Context, req *model.CalculationRequest) (*model.CalculationResult, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Calculate", Handler: calculateHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func calculateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.CalculationRequest)
	decErr := dec(in)
	call := func(ctx context.Context, req any) (any, error) {
		if decErr != nil {
			return nil, apperr.NewValidationError("body", "The request body is not valid JSON: "+status.Convert(decErr).Message())
		}
		return srv.(CalculatorServer).Calculate(ctx, req.(*model.CalculationRequest))
	}
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CalculateMethod}
	return interceptor(ctx, in, info, call)
}

// Server implements CalculatorServer on top of the engine. Errors are
// returned untouched and converted by the interceptor chain.
type Server struct {
	engine Processor
	mapper *problem.Mapper
	logger *slog.Logger
}

func NewServer(engine Processor, mapper *problem.Mapper, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if mapper == nil {
		mapper = problem.NewMapper(logger)
	}
	return &Server{engine: engine, mapper: mapper, logger: logger}
}

func (s *Server) Calculate(ctx context.Context, req *model.CalculationRequest) (*model.CalculationResult, error) {
	res, err := s.engine.Process(ctx, req)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Invoke calls Calculate on conn with the JSON codec.
func Invoke(ctx context.Context, conn grpc.ClientConnInterface, req *model.CalculationRequest, opts ...grpc.CallOption) (*model.CalculationResult, error) {
	out := new(model.CalculationResult)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := conn.Invoke(ctx, CalculateMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

package grpc

import (
	"context"
	"encoding/json"

	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counter/pkg/errors"
	pkgGrpc "github.com/vogiaan1904/ticketbottle-counter/pkg/grpc"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
	resp "github.com/vogiaan1904/ticketbottle-counter/pkg/response"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified name of the counter service. Messages
// use the JSON codec registered by pkg/grpc.
const ServiceName = "counter.v1.CounterService"

// WatchRequest opens a snapshot stream. Role only labels the observer.
type WatchRequest struct {
	Role string `json:"role,omitempty"`
}

// CounterServiceServer is the server API for counter.v1.CounterService.
type CounterServiceServer interface {
	Dispatch(ctx context.Context, cmd *service.Command) (*resp.Ack, error)
	GetSnapshot(ctx context.Context, req *struct{}) (*models.Snapshot, error)
	Watch(req *WatchRequest, stream grpc.ServerStream) error
}

type grpcService struct {
	svc service.CounterService
	l   logger.Logger
}

func NewGrpcService(svc service.CounterService, l logger.Logger) CounterServiceServer {
	return &grpcService{
		svc: svc,
		l:   l,
	}
}

// Dispatch runs one command. A rejected command comes back as a status error
// carrying its business code.
func (s *grpcService) Dispatch(ctx context.Context, cmd *service.Command) (*resp.Ack, error) {
	ack := s.svc.Dispatch(ctx, *cmd)
	if !ack.Success {
		s.l.Warn(ctx, "Command failed", "command", cmd.Type, "code", ack.Error.Code)
		return nil, resp.ParseGRPCError(pkgErrors.NewBusinessError(ack.Error.Code, ack.Error.Message))
	}
	return &ack, nil
}

func (s *grpcService) GetSnapshot(ctx context.Context, _ *struct{}) (*models.Snapshot, error) {
	snap := s.svc.Snapshot(ctx)
	return &snap, nil
}

// Watch streams the initial snapshot followed by every update until the
// client goes away.
func (s *grpcService) Watch(req *WatchRequest, stream grpc.ServerStream) error {
	ctx := stream.Context()

	role := req.Role
	if role == "" {
		role = "grpc"
	}

	client := s.svc.Observe(ctx, role)
	defer s.svc.Forget(client)

	s.l.Info(ctx, "Starting snapshot stream", "client_id", client.ID, "role", role)

	for {
		select {
		case <-ctx.Done():
			s.l.Info(ctx, "Snapshot stream cancelled by client", "client_id", client.ID)
			return ctx.Err()

		case payload, ok := <-client.Send:
			if !ok {
				return nil
			}
			if err := stream.SendMsg(json.RawMessage(payload)); err != nil {
				s.l.Error(ctx, "Failed to send snapshot", "client_id", client.ID, "error", err)
				return err
			}
		}
	}
}

func _CounterService_Dispatch_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(service.Command)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CounterServiceServer).Dispatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: pkgGrpc.MethodDispatch,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CounterServiceServer).Dispatch(ctx, req.(*service.Command))
	}
	return interceptor(ctx, in, info, handler)
}

func _CounterService_GetSnapshot_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(struct{})
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CounterServiceServer).GetSnapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: pkgGrpc.MethodGetSnapshot,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CounterServiceServer).GetSnapshot(ctx, req.(*struct{}))
	}
	return interceptor(ctx, in, info, handler)
}

func _CounterService_Watch_Handler(srv any, stream grpc.ServerStream) error {
	in := new(WatchRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(CounterServiceServer).Watch(in, stream)
}

// CounterService_ServiceDesc describes counter.v1.CounterService for
// grpc.Server.RegisterService.
var CounterService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CounterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Dispatch",
			Handler:    _CounterService_Dispatch_Handler,
		},
		{
			MethodName: "GetSnapshot",
			Handler:    _CounterService_GetSnapshot_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       _CounterService_Watch_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "counter/v1/counter.proto",
}

func RegisterCounterServiceServer(s grpc.ServiceRegistrar, srv CounterServiceServer) {
	s.RegisterService(&CounterService_ServiceDesc, srv)
}

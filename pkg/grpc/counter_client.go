package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Full method names of counter.v1.CounterService.
const (
	MethodDispatch    = "/counter.v1.CounterService/Dispatch"
	MethodGetSnapshot = "/counter.v1.CounterService/GetSnapshot"
	MethodWatch       = "/counter.v1.CounterService/Watch"

	// JSONSubtype is the content subtype the counter service speaks.
	JSONSubtype = "json"
)

type cleanupFunc func()

// CounterClient is a thin client for counter.v1.CounterService. Messages are
// JSON encoded, so requests and replies are plain Go values.
type CounterClient struct {
	conn *grpc.ClientConn
}

func NewCounterClient(addr string, opts ...grpc.DialOption) (*CounterClient, cleanupFunc, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(JSONSubtype)),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create counter client: %w", err)
	}

	return &CounterClient{conn: conn}, func() { conn.Close() }, nil
}

// Dispatch sends one command envelope and decodes the ack into out.
func (c *CounterClient) Dispatch(ctx context.Context, cmd any, out any) error {
	return c.conn.Invoke(ctx, MethodDispatch, cmd, out)
}

// GetSnapshot fetches the current snapshot into out.
func (c *CounterClient) GetSnapshot(ctx context.Context, out any) error {
	return c.conn.Invoke(ctx, MethodGetSnapshot, &struct{}{}, out)
}

// Watch opens the snapshot stream. Each call to recv blocks for the next raw
// JSON message.
func (c *CounterClient) Watch(ctx context.Context) (recv func() (json.RawMessage, error), err error) {
	desc := &grpc.StreamDesc{StreamName: "Watch", ServerStreams: true}
	stream, err := c.conn.NewStream(ctx, desc, MethodWatch)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&struct{}{}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}

	return func() (json.RawMessage, error) {
		var msg json.RawMessage
		if err := stream.RecvMsg(&msg); err != nil {
			return nil, err
		}
		return msg, nil
	}, nil
}

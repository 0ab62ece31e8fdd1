package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec lets counter.v1 messages travel as JSON under the
// application/grpc+json content type. Other services on the same server, such
// as health checks, keep using protobuf.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return JSONSubtype
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// Package proto holds the wire contract of the aura gRPC service: message
// types, the service descriptor and the codec used to marshal them.
//
// Messages are plain Go structs carried as JSON under the "json" content
// subtype; protobuf well-known types (emptypb, timestamppb) that travel as
// whole messages are marshalled with protojson.
package proto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	protov2 "google.golang.org/protobuf/proto"
)

// CodecName is the gRPC content subtype the client must request.
const CodecName = "json"

// Codec marshals service messages.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(protov2.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(protov2.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

func (Codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(Codec{})
}

// MaxMessageSize bounds a single message in either direction. It leaves
// room for a maximum-size direct upload after base64 expansion.
const MaxMessageSize = 96 << 20

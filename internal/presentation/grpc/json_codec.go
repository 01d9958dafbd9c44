package grpc

import (
	"encoding/json"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec carries RiskService messages as JSON so that the wire shape
// matches the HTTP body of POST /predict.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

// JSONCallOption forces the JSON codec on a client call.
func JSONCallOption() grpclib.CallOption {
	return grpclib.ForceCodecCallOption{Codec: jsonCodec{}}
}

package grpc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// JSONContentSubtype selects the JSON wire format, e.g.
// grpc.CallContentSubtype(JSONContentSubtype). riskd has no generated
// protobuf messages, so every RiskEngineService call uses it.
const JSONContentSubtype = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec encodes the request and response structs in messages.go.
// Unknown request fields are rejected so a misspelled field such as
// "userid" fails loudly instead of defaulting to the caller.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string {
	return JSONContentSubtype
}

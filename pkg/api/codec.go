package api

import "encoding/json"

// Codec marshals messages as plain JSON. It registers under the "json"
// name, replacing Connect's protobuf JSON codec, so handlers and clients
// exchange application/json bodies.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

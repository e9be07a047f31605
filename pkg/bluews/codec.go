package bluews

import (
	"bytes"
	"encoding/json"
)

// Codec encodes the request parameters and decodes the raw server response.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec is the default Codec.
//
// Unmarshal refuses an empty body and a literal JSON null so that a decoded
// response is never the zero value of its type.
type JSONCodec struct{}

// Marshal implements Codec.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrNullResponse
	}
	return json.Unmarshal(trimmed, v)
}

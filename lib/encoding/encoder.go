// Package encoding selects body codecs by media type.
//
// Two codecs are supported:
//   - JSON (application/json), the default
//   - msgpack (application/msgpack, application/x-msgpack)
//
// Anything else is treated as opaque text by Decode.
package encoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Media types.
const (
	MediaJSON     = "application/json"
	MediaMsgpack  = "application/msgpack"
	mediaXMsgpack = "application/x-msgpack"
)

// ErrInvalidFormat is returned when a body cannot be decoded by the codec
// its content type names.
var ErrInvalidFormat = errors.New("encoding: invalid body format")

// Codec marshals values for one media type.
type Codec interface {
	MediaType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) MediaType() string             { return MediaJSON }
func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) MediaType() string             { return MediaMsgpack }
func (msgpackCodec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// Codecs available by default.
var (
	JSON    Codec = jsonCodec{}
	Msgpack Codec = msgpackCodec{}
)

// ForContentType returns the codec for a Content-Type header value, or nil
// if the type is not structured data.
func ForContentType(contentType string) Codec {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	switch {
	case mt == MediaJSON || strings.HasSuffix(mt, "+json"):
		return JSON
	case mt == MediaMsgpack || mt == mediaXMsgpack:
		return Msgpack
	}
	return nil
}

// Negotiate picks a codec for an Accept header. JSON wins unless msgpack is
// explicitly listed.
func Negotiate(accept string) Codec {
	for _, part := range strings.Split(accept, ",") {
		if c := ForContentType(strings.TrimSpace(part)); c == Msgpack {
			return Msgpack
		}
	}
	return JSON
}

// Decode turns a body into a generic value: maps, slices and scalars for
// structured media types, a string otherwise. An empty body decodes to nil.
func Decode(contentType string, data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	codec := ForContentType(contentType)
	if codec == nil {
		return string(data), nil
	}
	var v any
	if err := codec.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, codec.MediaType(), err)
	}
	return v, nil
}

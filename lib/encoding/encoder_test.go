package encoding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   int64  `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
	Flag bool   `json:"flag" msgpack:"flag"`
}

func TestRoundTrip(t *testing.T) {
	for _, codec := range []Codec{JSON, Msgpack} {
		t.Run(codec.MediaType(), func(t *testing.T) {
			original := payload{ID: 12345, Name: "test-file.txt", Flag: true}

			data, err := codec.Marshal(original)
			require.NoError(t, err)

			var decoded payload
			require.NoError(t, codec.Unmarshal(data, &decoded))
			assert.Equal(t, original, decoded)
		})
	}
}

func TestForContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        Codec
	}{
		{"json", "application/json", JSON},
		{"json with charset", "application/json; charset=utf-8", JSON},
		{"json suffix", "application/problem+json", JSON},
		{"msgpack", "application/msgpack", Msgpack},
		{"x-msgpack", "application/x-msgpack", Msgpack},
		{"html", "text/html", nil},
		{"garbage", ";;", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForContentType(tt.contentType))
		})
	}
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, JSON, Negotiate(""))
	assert.Equal(t, JSON, Negotiate("text/html, */*"))
	assert.Equal(t, Msgpack, Negotiate("application/json, application/msgpack"))
}

func TestDecodeGeneric(t *testing.T) {
	body, err := Msgpack.Marshal(map[string]any{"name": "Billy", "list": []any{"a", "b"}})
	require.NoError(t, err)

	v, err := Decode("application/msgpack", body)
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok, "got %T", v)
	assert.Equal(t, "Billy", m["name"])
	assert.Equal(t, []any{"a", "b"}, m["list"])

	v, err = Decode("application/json", []byte(`{"a":true}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": true}, v)

	v, err = Decode("text/plain", []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	v, err = Decode("application/json", nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecodeInvalidFormat(t *testing.T) {
	_, err := Decode("application/json", []byte("{not json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

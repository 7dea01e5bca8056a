package openai

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelSnapshot(t *testing.T) {
	cases := []struct {
		in           string
		wantBase     string
		wantSnapshot string
	}{
		{"gpt-4o-2024-08-06", "gpt-4o", "2024-08-06"},
		{"gpt-4o-mini-2024-07-18", "gpt-4o-mini", "2024-07-18"},
		{"gpt-4o", "gpt-4o", ""},
		{"", "", ""},
		{"gpt-4o-2024-13-40", "gpt-4o-2024-13-40", ""},
	}
	for _, tc := range cases {
		base, snapshot := ParseModelSnapshot(tc.in)
		assert.Equal(t, tc.wantBase, base, "input %q", tc.in)
		assert.Equal(t, tc.wantSnapshot, snapshot, "input %q", tc.in)
	}
}

func responseWithBody(encoding string, body []byte) *http.Response {
	header := http.Header{}
	if encoding != "" {
		header.Set("Content-Encoding", encoding)
	}
	return &http.Response{Header: header, Body: io.NopCloser(bytes.NewReader(body))}
}

func TestGetBodyPlain(t *testing.T) {
	body, e := GetBody(responseWithBody("", []byte(`{"ok":true}`)), "http://test")
	require.Nil(t, e)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestGetBodyGzip(t *testing.T) {
	var compressed bytes.Buffer
	writer := gzip.NewWriter(&compressed)
	_, err := writer.Write([]byte(`{"ok":true}`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	body, e := GetBody(responseWithBody("gzip", compressed.Bytes()), "http://test")
	require.Nil(t, e)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestGetBodyBrotli(t *testing.T) {
	var compressed bytes.Buffer
	writer := brotli.NewWriter(&compressed)
	_, err := writer.Write([]byte(`{"ok":true}`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	body, e := GetBody(responseWithBody("br", compressed.Bytes()), "http://test")
	require.Nil(t, e)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestGetBodyBadGzipHeader(t *testing.T) {
	_, e := GetBody(responseWithBody("gzip", []byte("definitely not gzip")), "http://test")
	assert.NotNil(t, e)
}

func TestTextFormatBuilders(t *testing.T) {
	plain := TextAsPlain(TextVerbosityMedium)
	assert.Equal(t, TextFormatTypeText, plain.Format.Type)

	schema := TextAsJSONSchema("medicine-label", map[string]any{
		"name": map[string]any{"type": []string{"string", "null"}},
	}, true)
	assert.Equal(t, TextFormatTypeJSONSchema, schema.Format.Type)
	assert.Equal(t, "medicine-label", schema.Format.Name)
	require.NotNil(t, schema.Format.Schema)
	require.NotNil(t, schema.Format.Strict)
	assert.True(t, *schema.Format.Strict)
}

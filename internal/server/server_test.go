package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/classlayout/pkg/cache"
	errs "github.com/matzehuels/classlayout/pkg/errors"
	"github.com/matzehuels/classlayout/pkg/pipeline"
	"github.com/matzehuels/classlayout/pkg/render/sink"
)

const zooDiagram = `{
  "title": "Zoo",
  "entities": [
    {"id": "animal", "name": "Animal", "kind": "abstract-class"},
    {"id": "dog", "name": "Dog", "kind": "class", "attributes": [{"name": "name", "type": "string"}]},
    {"id": "owner", "name": "Owner", "kind": "class"}
  ],
  "relationships": [
    {"id": "r1", "kind": "inheritance", "sourceId": "dog", "targetId": "animal"},
    {"id": "r2", "kind": "association", "sourceId": "owner", "targetId": "dog", "label": "walks"}
  ]
}`

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	ts := httptest.NewServer(New(runner, cfg, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestVersion(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "commit")
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, Config{})
	const id = "0b7e8c1e-6f5a-4c8e-9a53-2a1c7d3e4f50"

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.NotEqual(t, "not-a-uuid", resp2.Header.Get(RequestIDHeader))
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/v1/layout", `{"diagram": `+zooDiagram+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Len(t, resp.Header.Get("X-Layout-Hash"), 64)

	doc, err := sink.ReadLayout(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Zoo", doc.Layout.Title)
	assert.Len(t, doc.Layout.Entities, 3)
	assert.Len(t, doc.Labels, 1)

	animal, ok := doc.Layout.EntityByID("animal")
	require.True(t, ok)
	dog, ok := doc.Layout.EntityByID("dog")
	require.True(t, ok)
	assert.Less(t, animal.Position.Y, dog.Position.Y)
}

func TestLayoutPartialConfig(t *testing.T) {
	ts := newTestServer(t, Config{})

	base := post(t, ts.URL+"/v1/layout", `{"diagram": `+zooDiagram+`}`)
	wide := post(t, ts.URL+"/v1/layout", `{"diagram": `+zooDiagram+`, "config": {"margin": 120}}`)
	require.Equal(t, http.StatusOK, base.StatusCode)
	require.Equal(t, http.StatusOK, wide.StatusCode)

	baseDoc, err := sink.ReadLayout(base.Body)
	require.NoError(t, err)
	wideDoc, err := sink.ReadLayout(wide.Body)
	require.NoError(t, err)
	assert.Greater(t, wideDoc.Layout.Bounds.Width, baseDoc.Layout.Bounds.Width)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t, Config{})

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"svg", "image/svg+xml", "<?xml"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "digraph"},
		{"json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render?format="+tt.format, `{"diagram": `+zooDiagram+`}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))

			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), tt.prefix))
		})
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t, Config{MaxBodyBytes: 4096, Limits: errs.Limits{MaxEntities: 2}})

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errs.Code
	}{
		{"unknown format", "/v1/render?format=gif", `{"diagram": ` + zooDiagram + `}`, http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"unknown style", "/v1/render?style=fancy", `{"diagram": ` + zooDiagram + `}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"malformed body", "/v1/layout", `{"diagram": [`, http.StatusBadRequest, errs.ErrCodeInvalidDiagram},
		{"empty body", "/v1/layout", ``, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"too many entities", "/v1/layout", `{"diagram": ` + zooDiagram + `}`, http.StatusRequestEntityTooLarge, errs.ErrCodeLimitExceeded},
		{"body too large", "/v1/layout", `{"diagram": {"title": "` + strings.Repeat("x", 8192) + `"}}`, http.StatusRequestEntityTooLarge, errs.ErrCodeLimitExceeded},
		{"invalid config", "/v1/layout", `{"diagram": {"entities": []}, "config": {"gridColumns": 0}}`, http.StatusBadRequest, errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestBatch(t *testing.T) {
	ts := newTestServer(t, Config{})

	body := `{"diagrams": [` + zooDiagram + `, {"title": "Solo", "entities": [{"id": "a", "name": "A", "kind": "class"}]}]}`
	resp := post(t, ts.URL+"/v1/layout/batch", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Layouts []sink.Document `json:"layouts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Layouts, 2)
	assert.Equal(t, "Zoo", out.Layouts[0].Layout.Title)
	assert.Equal(t, "Solo", out.Layouts[1].Layout.Title)
	assert.Len(t, out.Layouts[1].Layout.Entities, 1)
}

func TestBatchErrors(t *testing.T) {
	ts := newTestServer(t, Config{MaxBatch: 1})

	resp := post(t, ts.URL+"/v1/layout/batch", `{"diagrams": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts.URL+"/v1/layout/batch", `{"diagrams": [`+zooDiagram+`, `+zooDiagram+`]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, errs.ErrCodeLimitExceeded, decodeError(t, resp).Error.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errs.Code
		want int
	}{
		{errs.ErrCodeInvalidInput, http.StatusBadRequest},
		{errs.ErrCodeInvalidConfig, http.StatusBadRequest},
		{errs.ErrCodeLimitExceeded, http.StatusRequestEntityTooLarge},
		{errs.ErrCodeNotFound, http.StatusNotFound},
		{errs.ErrCodeUnsupported, http.StatusNotImplemented},
		{errs.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errs.ErrCodeNetwork, http.StatusBadGateway},
		{errs.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(errs.New(tt.code, "x")))
		})
	}
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}

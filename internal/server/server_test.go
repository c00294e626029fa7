package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/render"
)

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, New(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTypes(t *testing.T) {
	rec := doRequest(t, New(), http.MethodGet, "/v1/types", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got TypesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []model.ArtifactKind{model.KindAction, model.KindForm, model.KindSafeActionPair, model.KindSchema}, got.Kinds)
	assert.Contains(t, got.TypeTags, model.TypeTextarea)
	assert.Len(t, got.Methods, 4)
}

func TestArtifacts(t *testing.T) {
	s := New(WithRenderOptions(render.Options{ComponentsPath: "~/ui"}))

	tests := []struct {
		name     string
		body     string
		status   int
		code     string
		contains []string
		files    []string
	}{
		{
			name:     "schema with defaults",
			body:     `{"kind":"schema","name":"User","fields":[{"name":"email","type":"string"}]}`,
			status:   http.StatusOK,
			contains: []string{"email: z.string(),"},
			files:    []string{"user_schema.ts"},
		},
		{
			name:     "form uses server components path",
			body:     `{"kind":"form","name":"ContactForm","fields":[{"name":"name","type":"text"}]}`,
			status:   http.StatusOK,
			contains: []string{"from '~/ui/input'"},
			files:    []string{"contactform_form.tsx"},
		},
		{
			name:     "request components path wins",
			body:     `{"kind":"form","name":"ContactForm","fields":[{"name":"name","type":"text"}],"componentsPath":"@/ui"}`,
			status:   http.StatusOK,
			contains: []string{"from '@/ui/input'"},
		},
		{
			name:   "pair",
			body:   `{"kind":"safe-action-pair","name":"createUser","fields":[{"name":"email","type":"email"}]}`,
			status: http.StatusOK,
			files:  []string{"createuser_server_actions.ts", "createuser_form.tsx"},
		},
		{
			name:   "malformed json",
			body:   `{"kind":`,
			status: http.StatusBadRequest,
			code:   "INVALID_JSON",
		},
		{
			name:   "unknown key",
			body:   `{"kind":"schema","name":"User","fields":[],"extra":1}`,
			status: http.StatusBadRequest,
			code:   "INVALID_JSON",
		},
		{
			name:   "missing fields",
			body:   `{"kind":"form","name":"ContactForm","fields":[]}`,
			status: http.StatusBadRequest,
			code:   "CONFIGURATION",
		},
		{
			name:   "unsupported field type",
			body:   `{"kind":"form","name":"ContactForm","fields":[{"name":"tags","type":"array"}]}`,
			status: http.StatusUnprocessableEntity,
			code:   "UNSUPPORTED_FIELD_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/v1/artifacts", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.code != "" {
				var errResp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.code, errResp.Code)
				assert.NotEmpty(t, errResp.Error)
				return
			}

			var resp ArtifactResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Artifacts)
			for _, want := range tt.contains {
				assert.Contains(t, resp.Artifacts[0].SourceText, want)
			}
			if tt.files != nil {
				var files []string
				for _, artifact := range resp.Artifacts {
					files = append(files, artifact.Filename)
					assert.Equal(t, model.LanguageTypeScript, artifact.Language)
				}
				assert.Equal(t, tt.files, files)
			}
		})
	}
}

func TestArtifacts_DefaultOptions(t *testing.T) {
	defaults := model.DefaultOptions()
	defaults.UseValidation = false
	s := New(WithDefaults(defaults))

	rec := doRequest(t, s, http.MethodPost, "/v1/artifacts", `{"kind":"action","name":"submitForm","fields":[{"name":"x","type":"string"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "from 'zod'")

	rec = doRequest(t, s, http.MethodPost, "/v1/artifacts", `{"kind":"action","name":"submitForm","fields":[{"name":"x","type":"string"}],"options":{"useValidation":true,"typedParams":true}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "from 'zod'")
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(zerolog.New(&buf)))

	doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.Contains(t, buf.String(), `"path":"/healthz"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New().Run(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"spellpipe/internal/config"
	"spellpipe/internal/corrector"
	"spellpipe/internal/customdict"
	"spellpipe/internal/lexicon"
)

func newTestServer(t *testing.T) (*Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg, err := config.Parse(config.Defaults())
	require.NoError(t, err)
	lex := lexicon.NewFull(false, "not", "for", "pleasure")
	base := &corrector.Resources{Check: lex, Suggest: lex, Split: lex}

	s, err := New(context.Background(), cfg, base, customdict.New(client, ""), nil)
	require.NoError(t, err)
	return s, mr
}

func post(t *testing.T, h http.Handler, path string, body any, accept string) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCorrectJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s.Handler(), "/api/v1/correct", map[string]string{"text": "not forr pleasure"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp CorrectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not for pleasure", resp.Corrected)
	assert.Equal(t, 1, resp.Stats.Corrected)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "forr", resp.Changes[0].History[0].Before)
}

func TestCorrectMsgpack(t *testing.T) {
	s, _ := newTestServer(t)

	body, err := msgpack.Marshal(map[string]string{"text": "not forr pleasure"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/correct", bytes.NewReader(body))
	req.Header.Set("Content-Type", msgpackType)
	req.Header.Set("Accept", msgpackType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgpackType, rec.Header().Get("Content-Type"))
	var resp CorrectResponse
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not for pleasure", resp.Corrected)
}

func TestCorrectBadRequest(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := post(t, h, "/api/v1/correct", map[string]string{"text": "   "}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/correct", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomWordsSwapEngine(t *testing.T) {
	s, mr := newTestServer(t)
	h := s.Handler()
	before := s.Engine()

	rec := post(t, h, "/api/v1/custom-word", map[string]string{"word": "Kubernetes"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotSame(t, before, s.Engine())
	ok, err := mr.SIsMember(customdict.DefaultKey, "kubernetes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "not kubernetes", s.Engine().Correct("not kubernetis"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/custom-word/kubernetes", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "not kubernetis", s.Engine().Correct("not kubernetis"))

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/custom-word/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedisDown(t *testing.T) {
	s, mr := newTestServer(t)
	mr.Close()
	rec := post(t, s.Handler(), "/api/v1/custom-word", map[string]string{"word": "x"}, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	post(t, h, "/api/v1/correct", map[string]string{"text": "not forr"}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap corrector.MetricsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, int64(1), snap.Calls)
	assert.Equal(t, int64(1), snap.Corrected)
}

func TestWithoutDictionary(t *testing.T) {
	cfg, err := config.Parse(config.Defaults())
	require.NoError(t, err)
	lex := lexicon.NewBasic(false, "not")
	s, err := New(context.Background(), cfg, &corrector.Resources{Check: lex}, nil, nil)
	require.NoError(t, err)

	rec := post(t, s.Handler(), "/api/v1/custom-word", map[string]string{"word": "x"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

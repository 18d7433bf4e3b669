package backend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/stellar/pingd/support/logger"
	"github.com/stellar/pingd/tests"
)

func makeTestRouter(middleware ...func(http.Handler) http.Handler) *chi.Mux {
	return MakeAPIServer(logger.MakeBasicLogger(), MakeDefaultConfig()).MakeRouter(middleware...)
}

func TestPing(t *testing.T) {
	r := makeTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestPing_IgnoresHeadersAndQuery(t *testing.T) {
	r := makeTestRouter()

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/ping?"+tests.RandomString()+"="+tests.RandomString(), nil)
		req.Header.Set("X-"+tests.RandomString(), tests.RandomString())
		req.Header.Set("Origin", tests.RandomString())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	}
}

func TestPing_Idempotent(t *testing.T) {
	r := makeTestRouter()

	var first []byte
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		if i == 0 {
			first = w.Body.Bytes()
			continue
		}
		assert.Equal(t, first, w.Body.Bytes())
	}
}

func TestRoutes_NotFound(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		path   string
	}{
		{name: "other path", method: "GET", path: "/pong"},
		{name: "root", method: "GET", path: "/"},
		{name: "nested ping", method: "GET", path: "/ping/again"},
		{name: "post ping", method: "POST", path: "/ping"},
		{name: "put ping", method: "PUT", path: "/ping"},
		{name: "delete ping", method: "DELETE", path: "/ping"},
		{name: "options without preflight", method: "OPTIONS", path: "/ping"},
		{name: "metrics is not public", method: "GET", path: "/metrics"},
	}

	r := makeTestRouter()
	for _, k := range testCases {
		t.Run(k.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(k.method, k.path, nil))

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.NotEqual(t, "pong", w.Body.String())
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestMakeRouter_ExtraMiddleware(t *testing.T) {
	calls := 0
	counter := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			next.ServeHTTP(w, r)
		})
	}
	r := makeTestRouter(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ping", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/pong", nil))

	preflight := httptest.NewRequest("OPTIONS", "/ping", nil)
	preflight.Header.Set("Origin", DefaultAllowedOrigin)
	preflight.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(httptest.NewRecorder(), preflight)
	assert.Equal(t, 3, calls)
}

func TestMakeRouter_AccessLogUsesConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	l, e := logger.MakeLogrusLogger(&buf, logger.FormatJSON, false, map[string]interface{}{"service": "pingd"})
	if !assert.NoError(t, e) {
		return
	}
	r := MakeAPIServer(l, MakeDefaultConfig()).MakeRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, "pong", w.Body.String())

	var entry map[string]interface{}
	if !assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String()) {
		return
	}
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "pingd", entry["service"])
	msg, _ := entry["msg"].(string)
	assert.Contains(t, msg, "GET http://example.com/ping HTTP/1.1")
	assert.Contains(t, msg, " 200 ")
	assert.NotContains(t, msg, "\x1b[")
}

func TestMakeRouter_RecoversPanics(t *testing.T) {
	r := makeTestRouter()
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

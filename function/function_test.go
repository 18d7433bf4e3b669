package function

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandle(t *testing.T) {
	testCases := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "ping", method: "GET", path: "/ping", wantCode: http.StatusOK, wantBody: "pong"},
		{name: "unknown path", method: "GET", path: "/pong", wantCode: http.StatusNotFound},
		{name: "wrong method", method: "POST", path: "/ping", wantCode: http.StatusNotFound},
	}

	for _, k := range testCases {
		t.Run(k.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Handle(w, httptest.NewRequest(k.method, k.path, nil))

			assert.Equal(t, k.wantCode, w.Code)
			if k.wantBody != "" {
				assert.Equal(t, k.wantBody, w.Body.String())
			}
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

package networking

import (
	"context"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type staticEndpoint struct {
	path string
	body string
}

func (s staticEndpoint) GetPath() string {
	return s.path
}

func (s staticEndpoint) GetHandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(s.body))
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	listener, e := net.Listen("tcp", "127.0.0.1:0")
	if !assert.NoError(t, e) {
		return
	}

	s := MakeServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("served"))
	}))

	done := make(chan error, 1)
	go func() {
		done <- s.Serve(listener, "", "")
	}()

	body, e := NewHttpClient().Get(fmt.Sprintf("http://%s/anything", listener.Addr().String()))
	if assert.NoError(t, e) {
		assert.Equal(t, "served", string(body))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))

	select {
	case e = <-done:
		assert.NoError(t, e)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

func TestMakeEndpointServer(t *testing.T) {
	s, e := MakeEndpointServer([]Endpoint{
		staticEndpoint{path: "/a", body: "first"},
		staticEndpoint{path: "/b", body: "second"},
	})
	if !assert.NoError(t, e) {
		return
	}

	listener, e := net.Listen("tcp", "127.0.0.1:0")
	if !assert.NoError(t, e) {
		return
	}
	go s.Serve(listener, "", "")
	defer s.Shutdown(context.Background())

	c := NewHttpClient()
	body, e := c.Get(fmt.Sprintf("http://%s/b", listener.Addr().String()))
	if assert.NoError(t, e) {
		assert.Equal(t, "second", string(body))
	}

	_, e = c.Get(fmt.Sprintf("http://%s/c", listener.Addr().String()))
	assert.Error(t, e)
}

func TestMakeEndpointServer_DuplicatePath(t *testing.T) {
	_, e := MakeEndpointServer([]Endpoint{
		staticEndpoint{path: "/a"},
		staticEndpoint{path: "/a"},
	})
	assert.Error(t, e)
}

func TestCheckTLSFiles(t *testing.T) {
	f, e := ioutil.TempFile("", "pingd-cert")
	if !assert.NoError(t, e) {
		return
	}
	f.Close()
	defer os.Remove(f.Name())

	testCases := []struct {
		name     string
		certFile string
		keyFile  string
		wantErr  bool
	}{
		{name: "plain http", certFile: "", keyFile: "", wantErr: false},
		{name: "only cert", certFile: f.Name(), keyFile: "", wantErr: true},
		{name: "only key", certFile: "", keyFile: f.Name(), wantErr: true},
		{name: "missing cert", certFile: "/nonexistent/cert.pem", keyFile: f.Name(), wantErr: true},
		{name: "missing key", certFile: f.Name(), keyFile: "/nonexistent/key.pem", wantErr: true},
		{name: "both present", certFile: f.Name(), keyFile: f.Name(), wantErr: false},
	}

	for _, k := range testCases {
		t.Run(k.name, func(t *testing.T) {
			e := checkTLSFiles(k.certFile, k.keyFile)
			assert.Equal(t, k.wantErr, e != nil, fmt.Sprintf("%v", e))
		})
	}
}

package backend

import (
	"net/http"
)

var pongBytes = []byte("pong")

func (s *APIServer) ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, e := w.Write(pongBytes)
	if e != nil {
		s.l.Errorf("error writing ping response: %s", e)
	}
}

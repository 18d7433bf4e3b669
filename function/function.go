// Package function hosts the ping router as a Google Cloud Function.
package function

import (
	"net/http"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/stellar/pingd/backend"
	"github.com/stellar/pingd/support/logger"
)

// EntryPoint is the function name to deploy with, i.e. --entry-point=Ping
const EntryPoint = "Ping"

var handler http.Handler

func init() {
	cfg, e := backend.ReadConfig("")
	if e != nil {
		logger.Fatal(logger.MakeBasicLogger(), e)
	}

	l, e := logger.MakeLogrusLogger(os.Stderr, logger.FormatJSON, cfg.Verbose, map[string]interface{}{
		"service": "pingd",
		"host":    "cloud-function",
	})
	if e != nil {
		logger.Fatal(logger.MakeBasicLogger(), e)
	}

	handler = backend.MakeAPIServer(l, cfg).MakeRouter()
	functions.HTTP(EntryPoint, Handle)
}

// Handle passes the request to the router built at init, the invocation context is not used
func Handle(w http.ResponseWriter, r *http.Request) {
	handler.ServeHTTP(w, r)
}

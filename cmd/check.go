package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stellar/pingd/support/networking"
)

const expectedPingResponse = "pong"

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Checks that a running pingd answers its ping route, exits non-zero otherwise",
}

type checkInputs struct {
	url     *string
	timeout *time.Duration
}

func init() {
	options := checkInputs{}
	options.url = checkCmd.Flags().String("url", "http://localhost:8000/ping", "full URL of the ping route to check")
	options.timeout = checkCmd.Flags().Duration("timeout", 5*time.Second, "how long to wait for the response")

	checkCmd.Run = func(ccmd *cobra.Command, args []string) {
		e := checkPing(*options.url, *options.timeout)
		if e != nil {
			log.Fatal(e)
		}
		fmt.Println("ok")
	}
}

func checkPing(url string, timeout time.Duration) error {
	body, e := networking.NewHttpClientWithTimeout(timeout).Get(url)
	if e != nil {
		return errors.Wrapf(e, "ping check against '%s' failed", url)
	}

	if string(body) != expectedPingResponse {
		return errors.Errorf("ping check against '%s' got unexpected body '%s'", url, string(body))
	}
	return nil
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// build flags
var version string
var buildDate string
var gitHash string

const rootShort = "pingd is a liveness-check service for the local frontend."
const rootLong = `pingd answers GET /ping with "pong" and allows cross-origin requests with credentials from the local frontend.`
const pingdExamples = serverExamples + "\n  pingd check --url http://localhost:8000/ping"

// RootCmd is the main command for this repo
var RootCmd = &cobra.Command{
	Use:     "pingd",
	Short:   rootShort,
	Long:    rootLong,
	Example: pingdExamples,
	Run: func(ccmd *cobra.Command, args []string) {
		e := ccmd.Help()
		if e != nil {
			log.Fatal(e)
		}

		fmt.Println("version:", version)
		fmt.Println("build date:", buildDate)
		fmt.Println("git hash:", gitHash)
	},
}

func init() {
	RootCmd.AddCommand(serverCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(versionCmd)
}

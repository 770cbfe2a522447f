package main

import (
	"os"

	"github.com/tliron/kutil/util"
)

var version = "dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		util.Exit(exitCode(err))
	}
	util.Exit(exitOK)
}

// Package main is the entry point for the ledger-agent CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/beancount-agent/cmd/ledger-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

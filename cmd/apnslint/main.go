package main

import (
	"fmt"
	"os"

	"github.com/takimoto3/apnscodec/internal/cli"
)

func main() {
	if err := cli.RootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "apnslint: %v\n", err)
		os.Exit(1)
	}
}

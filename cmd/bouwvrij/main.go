package main

import (
	"os"

	"github.com/rkuiper/bouwvrij/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"log"
	"os"

	"github.com/ObiAU/contentagents/internal/cli"
)

func main() {
	log.SetOutput(os.Stdout)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

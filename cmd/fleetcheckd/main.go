package main

import (
	"log"

	"github.com/cinefleet/fleetcheck/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}

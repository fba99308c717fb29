package main

import (
	"github.com/cinefleet/fleetcheck/pkg/cli"
)

func main() {
	cli.Execute()
}

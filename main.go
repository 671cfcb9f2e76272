package main

import (
	"os"
	"strings"

	"postboard/service"
)

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to the service commands and exits with
// their status.
func RealMain() {
	args := os.Args[1:]
	if len(args) > 0 {
		args[0] = strings.ToLower(args[0])
	}
	exit(service.HandleCommand(args))
}

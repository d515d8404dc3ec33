package main

import (
	"github.com/sagrudd/limpet/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}

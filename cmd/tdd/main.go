package main

import (
	"tdd"

	// Example suite
	_ "tdd/internal/demo"
)

var version = "dev"

func main() {
	tdd.Version = version
	tdd.Main()
}

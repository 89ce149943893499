// Scrambler - CLI application for generating twisty puzzle scrambles.
package main

import (
	"github.com/SeamusWaldron/scrambler/internal/cli"
)

func main() {
	cli.Execute()
}

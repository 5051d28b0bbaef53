package main

import (
	"github.com/ogsmod/modtool/internal/cmd"
)

func main() {
	cmd.Execute()
}

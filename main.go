package main

import (
	"github.com/linkforge/linkforge/cmd"
)

func main() {
	cmd.Execute()
}

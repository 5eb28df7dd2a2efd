package main

import (
	"github.com/c9s/tacandle/pkg/cmd"
)

func main() {
	cmd.Execute()
}

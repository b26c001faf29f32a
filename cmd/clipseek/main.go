package main

import (
	"github.com/clipseek/clipseek-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}

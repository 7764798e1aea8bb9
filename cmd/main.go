package main

import (
	"github.com/tickersocial/tickersocial/internal/cli"
)

func main() {
	cli.Run()
}

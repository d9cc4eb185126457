package main

import (
	"os"

	"github.com/codeforge/codeforge/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}

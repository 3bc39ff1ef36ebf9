package main

import (
	"os"

	"github.com/scan-io-git/lintmux/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}

package main

import (
	"os"

	"github.com/hrtools/hrscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

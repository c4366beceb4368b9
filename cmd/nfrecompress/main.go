package main

import (
	"os"

	"github.com/nfcompress/nfcompress-go/internal/nfcli"
)

func main() {
	if err := nfcli.RunRecompressCmd(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

package nfcli

import (
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// RunDecompressCmd parses args as the nfdecompress command line and
// executes it.
func RunDecompressCmd(args []string) error {
	var cmd Decompress
	parser := flags.NewParser(&cmd, flags.Default)
	parser.Name = filepath.Base(os.Args[0])
	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}
	return cmd.Execute(nil)
}

// RunInfoCmd parses args as the nfinfo command line and executes it.
func RunInfoCmd(args []string) error {
	var cmd Info
	parser := flags.NewParser(&cmd, flags.Default)
	parser.Name = filepath.Base(os.Args[0])
	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}
	return cmd.Execute(nil)
}

// RunRecompressCmd parses args as the nfrecompress command line and
// executes it.
func RunRecompressCmd(args []string) error {
	var cmd Recompress
	parser := flags.NewParser(&cmd, flags.Default)
	parser.Name = filepath.Base(os.Args[0])
	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}
	return cmd.Execute(nil)
}

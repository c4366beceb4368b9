// Package nfcli wires jessevdk/go-flags command structs to the core
// packages for the three front-end tools.
package nfcli

import (
	"fmt"
	"io"
	"os"

	"github.com/nfcompress/nfcompress-go/internal/nfblock"
	"github.com/nfcompress/nfcompress-go/internal/nfengine"
	"github.com/nfcompress/nfcompress-go/internal/nffile"
	"github.com/nfcompress/nfcompress-go/internal/nflog"
)

// Decompress is the `nfdecompress` command: it loads one or more files,
// decompressing every block, and writes the concatenated payloads to
// standard output in block order.
type Decompress struct {
	Debug bool `short:"d" long:"debug" description:"Enable debug logging"`

	Args struct {
		Files []string `positional-arg-name:"file" description:"Input nfdump file(s)" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the decompress command against os.Stdout.
func (c *Decompress) Execute(args []string) error {
	if c.Debug {
		nflog.SetDebug(true)
	}
	return RunDecompress(c.Args.Files, os.Stdout)
}

// RunDecompress loads each path in order and writes every block's
// decompressed payload, in file order then block order, to w.
func RunDecompress(paths []string, w io.Writer) error {
	for _, path := range paths {
		handler := func(i int, b *nfblock.Block) int {
			if err := nfengine.Decompress(b); err != nil {
				nflog.Errorf("%s: decompress block %d: %v", path, i, err)
				b.Status = -1
				return -1
			}
			return 0
		}

		f, err := nffile.Load(path, handler, 0)
		if err != nil {
			return fmt.Errorf("nfcli: decompress %s: %w", path, err)
		}

		for j, b := range f.Blocks {
			if _, err := w.Write(b.Payload); err != nil {
				return fmt.Errorf("nfcli: decompress %s: block %d: %w", path, j, err)
			}
		}
	}
	return nil
}

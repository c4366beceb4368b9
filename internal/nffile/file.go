// Package nffile holds the in-memory File type and its reader and
// writer: a fork-join read loop and a fail-fast serializer.
package nffile

import (
	"github.com/nfcompress/nfcompress-go/internal/nfblock"
	"github.com/nfcompress/nfcompress-go/internal/nftype"
)

// File is a FileHeader, a StatsRecord, and the ordered block sequence
// read from or destined for one path on disk.
type File struct {
	Header nftype.FileHeader
	Stats  nftype.StatsRecord
	Blocks []*nfblock.Block

	// Size is the total number of bytes read from or written to disk for
	// this file, set by Load/SaveAs.
	Size int64

	// Name is the path this file was last loaded from or saved to.
	Name string
}

// NumBlocks returns the number of blocks currently held, which after a
// successful Load always equals Header.NumBlocks.
func (f *File) NumBlocks() int {
	return len(f.Blocks)
}

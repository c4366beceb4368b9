// Package nfblock is the in-memory representation of one nfdump data
// block: its envelope, its payload, and its compression state.
package nfblock

import (
	"github.com/nfcompress/nfcompress-go/internal/codec"
	"github.com/nfcompress/nfcompress-go/internal/nftype"
)

// Block is one chunk of records plus its envelope and codec state.
// header.Size always equals len(Payload).
type Block struct {
	Header nftype.BlockHeader

	// Status is 0 when ok, negative when faulted.
	Status int

	// Compression is the block's current in-memory compression state.
	Compression codec.Codec

	// FileCompression is the compression state as found on disk,
	// preserved for reporting even after in-memory decompression.
	FileCompression codec.Codec

	CompressedSize   int
	UncompressedSize int

	Payload []byte
}

// New returns a zeroed block with no payload, status ok, compression none.
func New() *Block {
	return &Block{}
}

// IsCatalog reports whether this block is the never-compressed catalog
// block.
func (b *Block) IsCatalog() bool {
	return b.Header.ID == nftype.CatalogBlock
}

// Reset clears a block's payload so it cannot be mistakenly reused across
// an engine call. Idempotent on an already-reset block.
func (b *Block) Reset() {
	b.Payload = nil
	b.Header.Size = 0
	b.Status = 0
}

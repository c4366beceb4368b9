// Package codec is the fixed table of (compress, decompress,
// max-compressed-size, suggested-decompressed-size, success-sentinel,
// buffer-too-small-sentinel) entries keyed by codec id. The table is
// immutable process-wide state, safe for concurrent read.
package codec

import "github.com/nfcompress/nfcompress-go/internal/nftype"

// Codec enumerates the compression methods a block can carry.
type Codec int

const (
	None Codec = iota
	LZO
	BZ2
	LZ4
	LZMA
)

// String returns the codec's display name, as used by the info tool.
func (c Codec) String() string {
	if e, ok := Lookup(c); ok {
		return e.Name
	}
	return "Unknown"
}

// CompressFunc compresses src into dst, returning how many bytes were
// written and a codec-specific status. level is ignored by codecs that
// have no tunable preset.
type CompressFunc func(src, dst []byte, level int) (n int, status int)

// DecompressFunc decompresses src into dst, returning how many bytes were
// written and a codec-specific status.
type DecompressFunc func(src, dst []byte) (n int, status int)

// Entry is one row of the codec registry.
type Entry struct {
	ID                        Codec
	Name                      string
	Flag                      uint32
	Compress                  CompressFunc
	Decompress                DecompressFunc
	MaxCompressedSize         func(n int) int
	SuggestedDecompressedSize func(n int) int
	OKStatus                  int
	BufferTooSmallStatus      int
}

var registry = [...]Entry{
	{
		ID:                        None,
		Name:                      "None",
		Flag:                      nftype.FlagNotCompressed,
		Compress:                  noneCompress,
		Decompress:                noneDecompress,
		MaxCompressedSize:         noneMaxCompressedSize,
		SuggestedDecompressedSize: noneSuggestedDecompressedSize,
		OKStatus:                  noneOK,
		BufferTooSmallStatus:      noneBufferTooSmallStatus,
	},
	{
		ID:                        LZO,
		Name:                      "LZO",
		Flag:                      nftype.FlagLZOCompressed,
		Compress:                  lzoCompress,
		Decompress:                lzoDecompress,
		MaxCompressedSize:         lzoMaxCompressedSize,
		SuggestedDecompressedSize: lzoSuggestedDecompressedSize,
		OKStatus:                  lzoOK,
		BufferTooSmallStatus:      lzoBufferTooSmall,
	},
	{
		ID:                        BZ2,
		Name:                      "BZ2",
		Flag:                      nftype.FlagBZ2Compressed,
		Compress:                  bz2Compress,
		Decompress:                bz2Decompress,
		MaxCompressedSize:         bz2MaxCompressedSize,
		SuggestedDecompressedSize: bz2SuggestedDecompressedSize,
		OKStatus:                  bz2OK,
		BufferTooSmallStatus:      bz2BufferTooSmall,
	},
	{
		ID:                        LZ4,
		Name:                      "LZ4",
		Flag:                      nftype.FlagLZ4Compressed,
		Compress:                  lz4Compress,
		Decompress:                lz4Decompress,
		MaxCompressedSize:         lz4MaxCompressedSize,
		SuggestedDecompressedSize: lz4SuggestedDecompressedSize,
		OKStatus:                  lz4OK,
		BufferTooSmallStatus:      lz4BufferTooSmall,
	},
	{
		ID:                        LZMA,
		Name:                      "LZMA",
		Flag:                      nftype.FlagLZMACompressed,
		Compress:                  lzmaCompress,
		Decompress:                lzmaDecompress,
		MaxCompressedSize:         lzmaMaxCompressedSize,
		SuggestedDecompressedSize: lzmaSuggestedDecompressedSize,
		OKStatus:                  lzmaOK,
		BufferTooSmallStatus:      lzmaBufferTooSmall,
	},
}

// Lookup returns the registry entry for c.
func Lookup(c Codec) (Entry, bool) {
	if c < None || int(c) >= len(registry) {
		return Entry{}, false
	}
	return registry[c], true
}

// FromFlag derives the codec a file's header flags declare, scanning in
// the fixed priority order LZO, BZ2, LZ4, LZMA. Returns None if no
// compression bit is set; if more than one bit is set, the first match in
// that order wins.
func FromFlag(flags uint32) Codec {
	switch nftype.CompressionFlag(flags) {
	case nftype.FlagLZOCompressed:
		return LZO
	case nftype.FlagBZ2Compressed:
		return BZ2
	case nftype.FlagLZ4Compressed:
		return LZ4
	case nftype.FlagLZMACompressed:
		return LZMA
	default:
		return None
	}
}

// ParseName maps a CLI-facing codec name ("none", "lzo", "bz2", "lz4",
// "lzma") to a Codec, for the recompress tool's -c flag.
func ParseName(name string) (Codec, bool) {
	switch name {
	case "none":
		return None, true
	case "lzo":
		return LZO, true
	case "bz2":
		return BZ2, true
	case "lz4":
		return LZ4, true
	case "lzma":
		return LZMA, true
	default:
		return None, false
	}
}

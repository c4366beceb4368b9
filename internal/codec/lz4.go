package codec

import (
	"errors"

	"github.com/pierrec/lz4/v4"
)

// lz4Compress and lz4Decompress use pierrec/lz4/v4's block API
// (CompressBlockHC / UncompressBlock), the same functions used for
// fixed-size chunk compression elsewhere in this ecosystem.
func lz4Compress(src, dst []byte, _ int) (int, int) {
	n, err := lz4.CompressBlockHC(src, dst, lz4.Level9, nil, nil)
	if err != nil {
		return 0, lz4ErrGeneric
	}
	if n == 0 {
		// pierrec returns 0 when dst can't hold the compressed output.
		return 0, lz4BufferTooSmall
	}
	return n, lz4OK
}

func lz4Decompress(src, dst []byte) (int, int) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return 0, lz4BufferTooSmall
		}
		return 0, lz4ErrGeneric
	}
	return n, lz4OK
}

// lz4MaxCompressedSize is compress_max_size_lz4 from compress.c
// (LZ4_compressBound).
func lz4MaxCompressedSize(n int) int {
	return lz4.CompressBlockBound(n)
}

func lz4SuggestedDecompressedSize(n int) int {
	return 4 * n
}

const (
	lz4OK             = 0
	lz4BufferTooSmall = -1
	lz4ErrGeneric     = -2
)

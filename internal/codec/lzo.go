package codec

import (
	"errors"

	"github.com/dgryski/go-lzo"
)

// lzoCompress and lzoDecompress wrap github.com/dgryski/go-lzo's LZO1X-1
// port.
func lzoCompress(src, dst []byte, _ int) (int, int) {
	z, err := lzo.NewCompressor(lzo.Lzo1x_1)
	if err != nil {
		return 0, lzoErrGeneric
	}
	out, err := z.Compress(src)
	if err != nil {
		return 0, lzoErrGeneric
	}
	if len(out) > len(dst) {
		// Should not happen: dst was sized via lzoMaxCompressedSize.
		return 0, lzoBufferTooSmall
	}
	copy(dst[:len(out)], out)
	return len(out), lzoOK
}

func lzoDecompress(src, dst []byte) (int, int) {
	z, err := lzo.NewCompressor(lzo.Lzo1x_1)
	if err != nil {
		return 0, lzoErrGeneric
	}
	n, err := z.Decompress(src, dst)
	if err != nil {
		if errors.Is(err, lzo.ErrOutputOverrun) {
			return 0, lzoBufferTooSmall
		}
		return 0, lzoErrGeneric
	}
	return n, lzoOK
}

// lzoMaxCompressedSize bounds the worst-case block expansion, avoiding
// excessive reallocation.
func lzoMaxCompressedSize(n int) int {
	return n + n/16 + 64 + 3
}

func lzoSuggestedDecompressedSize(n int) int {
	return 4 * n
}

const (
	lzoOK = 0
	// lzoBufferTooSmall mirrors liblzo's LZO_E_OUTPUT_OVERRUN (-5).
	lzoBufferTooSmall = -5
	lzoErrGeneric     = -1
)

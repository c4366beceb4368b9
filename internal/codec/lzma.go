package codec

import (
	"bytes"
	"errors"
	"io"

	"github.com/ulikunitz/xz"
)

// lzmaCompress and lzmaDecompress use ulikunitz/xz's .xz container
// reader/writer (xz.NewWriter/xz.NewReader), not the bare lzma
// subpackage, since this codec's on-disk payload is a full liblzma-style
// .xz stream rather than a raw LZMA2 block.
func lzmaCompress(src, dst []byte, level int) (int, int) {
	cw := newCapWriter(dst)
	cfg := xz.WriterConfig{DictCap: dictCapForPreset(level)}
	if err := cfg.Verify(); err != nil {
		return 0, lzmaErrGeneric
	}
	w, err := cfg.NewWriter(cw)
	if err != nil {
		return 0, lzmaErrGeneric
	}
	if _, err := w.Write(src); err != nil {
		return 0, lzmaStatusFor(err)
	}
	if err := w.Close(); err != nil {
		return 0, lzmaStatusFor(err)
	}
	return cw.n, lzmaOK
}

func lzmaDecompress(src, dst []byte) (int, int) {
	cw := newCapWriter(dst)
	r, err := xz.NewReader(bytes.NewReader(src))
	if err != nil {
		return 0, lzmaErrGeneric
	}
	if _, err := io.Copy(cw, r); err != nil {
		return 0, lzmaStatusFor(err)
	}
	return cw.n, lzmaOK
}

func lzmaStatusFor(err error) int {
	if errors.Is(err, errBufferFull) {
		return lzmaBufferTooSmall
	}
	return lzmaErrGeneric
}

// dictCapForPreset maps the 0-9 liblzma preset scale onto a dictionary
// capacity, since ulikunitz/xz has no numeric preset of its own.
func dictCapForPreset(level int) int {
	const (
		minCap = 1 << 20 // 1 MiB, xz package's practical floor
		maxCap = 1 << 26 // 64 MiB, matches the original's mem_limit in decompress_lzma
	)
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	cap := minCap << uint(level)
	if cap > maxCap || cap <= 0 {
		cap = maxCap
	}
	return cap
}

// lzmaMaxCompressedSize bounds the worst case: the input grows slightly
// plus a fixed container/header overhead.
func lzmaMaxCompressedSize(n int) int {
	return n + n/3 + 128
}

func lzmaSuggestedDecompressedSize(n int) int {
	return 8 * n
}

const (
	lzmaOK = 0
	// lzmaBufferTooSmall mirrors LZMA_BUF_ERROR (10) from lzma.h.
	lzmaBufferTooSmall = 10
	lzmaErrGeneric     = 1
)

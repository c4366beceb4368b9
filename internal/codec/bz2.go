package codec

import (
	"bytes"
	"errors"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// bz2Compress and bz2Decompress use dsnet/compress/bzip2, a pure-Go
// encoder/decoder pair. The standard library's compress/bzip2 only
// decodes, so it cannot encode this codec's payloads.
func bz2Compress(src, dst []byte, level int) (int, int) {
	cw := newCapWriter(dst)
	w, err := bzip2.NewWriter(cw, &bzip2.WriterConfig{Level: clampBZ2Level(level)})
	if err != nil {
		return 0, bz2ErrGeneric
	}
	if _, err := w.Write(src); err != nil {
		return 0, bz2StatusFor(err)
	}
	if err := w.Close(); err != nil {
		return 0, bz2StatusFor(err)
	}
	return cw.n, bz2OK
}

func bz2Decompress(src, dst []byte) (int, int) {
	cw := newCapWriter(dst)
	r, err := bzip2.NewReader(bytes.NewReader(src), nil)
	if err != nil {
		return 0, bz2ErrGeneric
	}
	defer func() { _ = r.Close() }()
	if _, err := io.Copy(cw, r); err != nil {
		return 0, bz2StatusFor(err)
	}
	return cw.n, bz2OK
}

func bz2StatusFor(err error) int {
	if errors.Is(err, errBufferFull) {
		return bz2BufferTooSmall
	}
	return bz2ErrGeneric
}

func clampBZ2Level(level int) int {
	if level < 1 {
		return 1
	}
	if level > 9 {
		return 9
	}
	return level
}

// bz2MaxCompressedSize bounds the worst-case block expansion bzip2 adds.
func bz2MaxCompressedSize(n int) int {
	return 101*n/100 + 600
}

func bz2SuggestedDecompressedSize(n int) int {
	return 8 * n
}

const (
	bz2OK = 0
	// bz2BufferTooSmall mirrors BZ_OUTBUFF_FULL (-8) from bzlib.h.
	bz2BufferTooSmall = -8
	bz2ErrGeneric     = -1
)

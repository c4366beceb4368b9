// Package nfengine applies or reverses a codec on a block: compress with
// no retry (compression is deterministic over an adequately-sized
// buffer), decompress with grow-on-undersize retry up to a 64x cap.
package nfengine

import (
	"fmt"

	"github.com/nfcompress/nfcompress-go/internal/codec"
	"github.com/nfcompress/nfcompress-go/internal/nfblock"
	"github.com/nfcompress/nfcompress-go/internal/nfconfig"
	"github.com/nfcompress/nfcompress-go/internal/nferrors"
	"github.com/nfcompress/nfcompress-go/internal/nflog"
)

// growCapFactor bounds the decompression retry loop: a well-formed
// payload never decompresses to more than 64x its compressed size.
const growCapFactor = 64

// Compress applies codec c to block b in place. A catalog block, or
// codec == codec.None, succeeds without touching the payload.
func Compress(b *nfblock.Block, c codec.Codec, presets *nfconfig.Presets) error {
	if b.Payload == nil {
		nflog.Errorf("Block has no data")
		return fmt.Errorf("nfengine: compress: %w", nferrors.ErrPrecondition)
	}
	if b.Compression != codec.None {
		nflog.Errorf("Block is already compressed")
		return fmt.Errorf("nfengine: compress: %w", nferrors.ErrPrecondition)
	}
	entry, ok := codec.Lookup(c)
	if !ok {
		nflog.Errorf("Unknown compression method: %d", c)
		return fmt.Errorf("nfengine: compress: %w", nferrors.ErrPrecondition)
	}

	if b.IsCatalog() || c == codec.None {
		return nil
	}

	size := int(b.Header.Size)
	bufSize := entry.MaxCompressedSize(size)
	buf := make([]byte, bufSize)

	level := levelFor(c, presets)
	n, status := entry.Compress(b.Payload, buf, level)
	if status != entry.OKStatus {
		nflog.Errorf("%s compression error: %d", entry.Name, status)
		return fmt.Errorf("nfengine: compress: %w", nferrors.ErrCodec)
	}

	buf = buf[:n]
	b.Payload = buf
	b.Header.Size = uint32(n)
	b.CompressedSize = n
	b.Compression = c
	return nil
}

// Decompress reverses whatever codec b.Compression currently names. If
// the block is already decompressed it returns immediately.
func Decompress(b *nfblock.Block) error {
	if b.Payload == nil {
		nflog.Errorf("Block has no data")
		return fmt.Errorf("nfengine: decompress: %w", nferrors.ErrPrecondition)
	}

	c := b.Compression
	if c == codec.None {
		return nil
	}

	entry, ok := codec.Lookup(c)
	if !ok {
		nflog.Errorf("Unknown compression method: %d", c)
		return fmt.Errorf("nfengine: decompress: %w", nferrors.ErrPrecondition)
	}

	size := int(b.Header.Size)
	bufSize := entry.SuggestedDecompressedSize(size)
	buf := make([]byte, bufSize)

	ceiling := growCapFactor * size
	var n, status int
	for {
		n, status = entry.Decompress(b.Payload, buf)
		if status == entry.OKStatus {
			break
		}
		if status == entry.BufferTooSmallStatus && len(buf) < ceiling {
			bufSize = len(buf) * 2
			if bufSize > ceiling {
				bufSize = ceiling
			}
			buf = make([]byte, bufSize)
			continue
		}
		nflog.Errorf("%s decompression error: %d", entry.Name, status)
		return fmt.Errorf("nfengine: decompress: %w", nferrors.ErrCodec)
	}

	buf = buf[:n]
	b.Payload = buf
	b.Header.Size = uint32(n)
	b.UncompressedSize = n
	b.Compression = codec.None
	return nil
}

func levelFor(c codec.Codec, presets *nfconfig.Presets) int {
	if presets == nil {
		return 0
	}
	switch c {
	case codec.BZ2:
		return presets.BZ2Preset
	case codec.LZMA:
		return presets.LZMAPreset
	default:
		return 0
	}
}

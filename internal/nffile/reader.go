package nffile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nfcompress/nfcompress-go/internal/codec"
	"github.com/nfcompress/nfcompress-go/internal/nfblock"
	"github.com/nfcompress/nfcompress-go/internal/nfdispatch"
	"github.com/nfcompress/nfcompress-go/internal/nferrors"
	"github.com/nfcompress/nfcompress-go/internal/nflog"
	"github.com/nfcompress/nfcompress-go/internal/nftype"
)

// Handler processes one loaded block and returns its status, the same
// contract nfdispatch.Pool expects.
type Handler = nfdispatch.Handler[*nfblock.Block]

// Load reads path end to end: FileHeader, StatsRecord, then a stream of
// blocks. If handler is non-nil, each block is dispatched to it as soon
// as it is read, overlapping I/O for block N+1 with handler work for
// block N. Load blocks until every dispatched handler has finished.
func Load(path string, handler Handler, workers int) (*File, error) {
	return LoadReader(path, nil, handler, workers)
}

// LoadReader is Load with the byte source supplied directly, for tests
// that don't want to touch the filesystem. name is recorded as f.Name.
func LoadReader(name string, r io.Reader, handler Handler, workers int) (*File, error) {
	var closer io.Closer
	if r == nil {
		f, err := os.Open(name)
		if err != nil {
			nflog.Errorf("open %s: %v", name, err)
			return nil, fmt.Errorf("nffile: load %s: %w", name, err)
		}
		r = f
		closer = f
	}
	if closer != nil {
		defer closer.Close()
	}

	var bytesRead int64

	header, err := nftype.ReadFileHeader(r)
	if err != nil {
		nflog.Errorf("%s: read file header: %v", name, err)
		return nil, fmt.Errorf("nffile: load %s: %w", name, shortReadOrFormat(err))
	}
	bytesRead += nftype.FileHeaderSize

	stats, err := nftype.ReadStatsRecord(r)
	if err != nil {
		nflog.Errorf("%s: read stats record: %v", name, err)
		return nil, fmt.Errorf("nffile: load %s: %w", name, shortReadOrFormat(err))
	}
	bytesRead += nftype.StatsRecordSize

	fileCompression := codec.FromFlag(header.Flags)

	f := &File{
		Header: header,
		Stats:  stats,
		Blocks: make([]*nfblock.Block, 0, header.NumBlocks),
		Name:   name,
	}

	var pool *nfdispatch.Pool[*nfblock.Block]
	if handler != nil {
		pool = nfdispatch.NewPool[*nfblock.Block](workers)
	}

	// fail waits for every handler already dispatched before returning err.
	fail := func(err error) (*File, error) {
		if pool != nil {
			pool.Wait()
		}
		return nil, err
	}

	count := 0
	for {
		bh, err := nftype.ReadBlockHeader(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			nflog.Errorf("%s: block %d: short read on block header: %v", name, count, err)
			return fail(fmt.Errorf("nffile: load %s: %w", name, nferrors.ErrShortRead))
		}
		bytesRead += nftype.BlockHeaderSize

		payload := make([]byte, bh.Size)
		if _, err := io.ReadFull(r, payload); err != nil {
			nflog.Errorf("%s: block %d: short read on payload: %v", name, count, err)
			return fail(fmt.Errorf("nffile: load %s: %w", name, nferrors.ErrShortRead))
		}
		bytesRead += int64(bh.Size)

		b := nfblock.New()
		b.Header = bh
		b.Payload = payload
		b.Status = 0
		if bh.ID == nftype.CatalogBlock {
			b.Compression = codec.None
		} else {
			b.Compression = fileCompression
		}
		b.FileCompression = b.Compression
		b.CompressedSize = int(bh.Size)
		b.UncompressedSize = int(bh.Size)

		f.Blocks = append(f.Blocks, b)
		if uint32(len(f.Blocks)) > f.Header.NumBlocks {
			f.Header.NumBlocks = uint32(len(f.Blocks))
		}

		if pool != nil {
			pool.Submit(count, b, handler)
		}
		count++
	}

	if uint32(count) < f.Header.NumBlocks {
		nflog.Errorf("%s: declared %d blocks, found only %d", name, f.Header.NumBlocks, count)
		return fail(fmt.Errorf("nffile: load %s: %w", name, nferrors.ErrFormat))
	}

	if pool != nil {
		if status := pool.Wait(); status < 0 {
			nflog.Errorf("%s: block handler reported fatal status %d", name, status)
			return nil, fmt.Errorf("nffile: load %s: %w", name, nferrors.ErrCodec)
		}
	}

	f.Size = bytesRead
	return f, nil
}

func shortReadOrFormat(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nferrors.ErrShortRead
	}
	return nferrors.ErrFormat
}

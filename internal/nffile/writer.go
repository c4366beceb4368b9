package nffile

import (
	"fmt"
	"io"
	"os"

	"github.com/nfcompress/nfcompress-go/internal/codec"
	"github.com/nfcompress/nfcompress-go/internal/nferrors"
	"github.com/nfcompress/nfcompress-go/internal/nflog"
	"github.com/nfcompress/nfcompress-go/internal/nftype"
)

// compressionFlags are every bit FileHeader.Flags reserves for a codec.
// SaveAs clears all of them before setting the one the first block names.
const compressionFlags = nftype.FlagLZOCompressed |
	nftype.FlagBZ2Compressed |
	nftype.FlagLZ4Compressed |
	nftype.FlagLZMACompressed

// Save writes f back to the path it was last loaded from or saved to.
func Save(f *File) error {
	return SaveAs(f, f.Name)
}

// SaveAs serializes f to path: the FileHeader (with its compression flag
// recomputed from the first block), the StatsRecord, then every block in
// order. It refuses an empty file and fails fast on the first block
// whose status is non-zero, writing nothing for that block or any after
// it.
func SaveAs(f *File, path string) error {
	if len(f.Blocks) == 0 {
		nflog.Errorf("%s: refusing to save an empty file", path)
		return fmt.Errorf("nffile: save %s: %w", path, nferrors.ErrPrecondition)
	}

	flag := codecFlag(f.Blocks[0].Compression)
	f.Header.Flags = (f.Header.Flags &^ compressionFlags) | flag
	f.Header.NumBlocks = uint32(len(f.Blocks))

	out, err := os.Create(path)
	if err != nil {
		nflog.Errorf("create %s: %v", path, err)
		return fmt.Errorf("nffile: save %s: %w", path, err)
	}
	defer out.Close()

	if err := writeAll(out, f); err != nil {
		return err
	}

	f.Name = path
	return nil
}

func writeAll(w io.Writer, f *File) error {
	var written int64

	if err := nftype.WriteFileHeader(w, &f.Header); err != nil {
		nflog.Errorf("%s: write file header: %v", f.Name, err)
		return fmt.Errorf("nffile: save %s: %w", f.Name, nferrors.ErrShortWrite)
	}
	written += nftype.FileHeaderSize

	if err := nftype.WriteStatsRecord(w, &f.Stats); err != nil {
		nflog.Errorf("%s: write stats record: %v", f.Name, err)
		return fmt.Errorf("nffile: save %s: %w", f.Name, nferrors.ErrShortWrite)
	}
	written += nftype.StatsRecordSize

	for i, b := range f.Blocks {
		if b.Status != 0 {
			nflog.Errorf("%s: block %d has fatal status %d, refusing to save", f.Name, i, b.Status)
			return fmt.Errorf("nffile: save %s: %w", f.Name, nferrors.ErrPrecondition)
		}
		if err := nftype.WriteBlockHeader(w, &b.Header); err != nil {
			nflog.Errorf("%s: block %d: write header: %v", f.Name, i, err)
			return fmt.Errorf("nffile: save %s: %w", f.Name, nferrors.ErrShortWrite)
		}
		written += nftype.BlockHeaderSize

		n, err := w.Write(b.Payload)
		if err != nil || n != len(b.Payload) {
			nflog.Errorf("%s: block %d: write payload: %v", f.Name, i, err)
			return fmt.Errorf("nffile: save %s: %w", f.Name, nferrors.ErrShortWrite)
		}
		written += int64(n)
	}

	f.Size = written
	return nil
}

func codecFlag(c codec.Codec) uint32 {
	if e, ok := codec.Lookup(c); ok {
		return e.Flag
	}
	return nftype.FlagNotCompressed
}

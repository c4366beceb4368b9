package nftype

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadFileHeader reads a FileHeader from r. Accepts layout versions 1 and 2.
func ReadFileHeader(r io.Reader) (FileHeader, error) {
	var h FileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return FileHeader{}, err
	}
	if h.Magic != Magic {
		return FileHeader{}, fmt.Errorf("nftype: unrecognized magic 0x%04x", h.Magic)
	}
	if h.Version != LayoutVersion1 && h.Version != LayoutVersion2 {
		return FileHeader{}, fmt.Errorf("nftype: unsupported layout version %d", h.Version)
	}
	return h, nil
}

// WriteFileHeader writes a FileHeader to w.
func WriteFileHeader(w io.Writer, h *FileHeader) error {
	return binary.Write(w, binary.LittleEndian, h)
}

// ReadStatsRecord reads a StatsRecord from r, treating it as an opaque blob.
func ReadStatsRecord(r io.Reader) (StatsRecord, error) {
	var s StatsRecord
	if err := binary.Read(r, binary.LittleEndian, &s); err != nil {
		return StatsRecord{}, err
	}
	return s, nil
}

// WriteStatsRecord writes a StatsRecord to w unchanged.
func WriteStatsRecord(w io.Writer, s *StatsRecord) error {
	return binary.Write(w, binary.LittleEndian, s)
}

// ReadBlockHeader reads a BlockHeader from r.
func ReadBlockHeader(r io.Reader) (BlockHeader, error) {
	var h BlockHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return BlockHeader{}, err
	}
	return h, nil
}

// WriteBlockHeader writes a BlockHeader to w.
func WriteBlockHeader(w io.Writer, h *BlockHeader) error {
	return binary.Write(w, binary.LittleEndian, h)
}

// CompressionFlag scans Flags in the priority order the reader uses:
// LZO, BZ2, LZ4, LZMA. Returns FlagNotCompressed if none match.
func CompressionFlag(flags uint32) uint32 {
	switch {
	case flags&FlagLZOCompressed != 0:
		return FlagLZOCompressed
	case flags&FlagBZ2Compressed != 0:
		return FlagBZ2Compressed
	case flags&FlagLZ4Compressed != 0:
		return FlagLZ4Compressed
	case flags&FlagLZMACompressed != 0:
		return FlagLZMACompressed
	default:
		return FlagNotCompressed
	}
}

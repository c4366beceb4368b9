package nftype

import (
	"bytes"
	"testing"
)

func TestFileHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	in := FileHeader{
		Magic:     Magic,
		Version:   LayoutVersion2,
		Flags:     FlagLZ4Compressed,
		NumBlocks: 3,
	}
	copy(in.Ident[:], "test-ident")

	var buf bytes.Buffer
	if err := WriteFileHeader(&buf, &in); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}
	if buf.Len() != FileHeaderSize {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), FileHeaderSize)
	}

	out, err := ReadFileHeader(&buf)
	if err != nil {
		t.Fatalf("ReadFileHeader: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestReadFileHeaderRejectsBadMagic(t *testing.T) {
	t.Parallel()

	in := FileHeader{Magic: 0x1234, Version: LayoutVersion1}
	var buf bytes.Buffer
	if err := WriteFileHeader(&buf, &in); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}
	if _, err := ReadFileHeader(&buf); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestReadFileHeaderRejectsBadVersion(t *testing.T) {
	t.Parallel()

	in := FileHeader{Magic: Magic, Version: 99}
	var buf bytes.Buffer
	if err := WriteFileHeader(&buf, &in); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}
	if _, err := ReadFileHeader(&buf); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestStatsRecordRoundTrip(t *testing.T) {
	t.Parallel()

	in := StatsRecord{
		NumFlows:  100,
		NumBytes:  200,
		NumPackets: 300,
		FirstSeen: 111,
		LastSeen:  222,
	}
	var buf bytes.Buffer
	if err := WriteStatsRecord(&buf, &in); err != nil {
		t.Fatalf("WriteStatsRecord: %v", err)
	}
	if buf.Len() != StatsRecordSize {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), StatsRecordSize)
	}
	out, err := ReadStatsRecord(&buf)
	if err != nil {
		t.Fatalf("ReadStatsRecord: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	in := BlockHeader{NumRecords: 7, Size: 42, ID: DataBlockType1, Flags: BlockFlagCompressed}
	var buf bytes.Buffer
	if err := WriteBlockHeader(&buf, &in); err != nil {
		t.Fatalf("WriteBlockHeader: %v", err)
	}
	if buf.Len() != BlockHeaderSize {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), BlockHeaderSize)
	}
	out, err := ReadBlockHeader(&buf)
	if err != nil {
		t.Fatalf("ReadBlockHeader: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestCompressionFlagPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags uint32
		want  uint32
	}{
		{name: "none", flags: FlagAnonymized, want: FlagNotCompressed},
		{name: "lzo-only", flags: FlagLZOCompressed, want: FlagLZOCompressed},
		{name: "bz2-only", flags: FlagBZ2Compressed, want: FlagBZ2Compressed},
		{name: "lz4-only", flags: FlagLZ4Compressed, want: FlagLZ4Compressed},
		{name: "lzma-only", flags: FlagLZMACompressed, want: FlagLZMACompressed},
		{name: "lzo-wins-over-bz2", flags: FlagLZOCompressed | FlagBZ2Compressed, want: FlagLZOCompressed},
		{name: "bz2-wins-over-lz4-lzma", flags: FlagBZ2Compressed | FlagLZ4Compressed | FlagLZMACompressed, want: FlagBZ2Compressed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CompressionFlag(tc.flags); got != tc.want {
				t.Fatalf("CompressionFlag(0x%x) = 0x%x, want 0x%x", tc.flags, got, tc.want)
			}
		})
	}
}

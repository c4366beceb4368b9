package nffile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nfcompress/nfcompress-go/internal/codec"
	"github.com/nfcompress/nfcompress-go/internal/nfblock"
	"github.com/nfcompress/nfcompress-go/internal/nferrors"
	"github.com/nfcompress/nfcompress-go/internal/nftype"
)

func encodeFile(t *testing.T, header nftype.FileHeader, stats nftype.StatsRecord, blocks [][]byte, ids []uint16) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := nftype.WriteFileHeader(&buf, &header); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}
	if err := nftype.WriteStatsRecord(&buf, &stats); err != nil {
		t.Fatalf("WriteStatsRecord: %v", err)
	}
	for i, payload := range blocks {
		bh := nftype.BlockHeader{
			NumRecords: uint32(len(payload)),
			Size:       uint32(len(payload)),
			ID:         ids[i],
			Flags:      nftype.BlockFlagNone,
		}
		if err := nftype.WriteBlockHeader(&buf, &bh); err != nil {
			t.Fatalf("WriteBlockHeader: %v", err)
		}
		buf.Write(payload)
	}
	return buf.Bytes()
}

func uniformIDs(n int, id uint16) []uint16 {
	ids := make([]uint16, n)
	for i := range ids {
		ids[i] = id
	}
	return ids
}

func TestLoadUncompressedFile(t *testing.T) {
	t.Parallel()

	blocks := [][]byte{[]byte("first block payload"), []byte("second block payload")}
	header := nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2, NumBlocks: uint32(len(blocks))}
	raw := encodeFile(t, header, nftype.StatsRecord{}, blocks, uniformIDs(len(blocks), nftype.DataBlockType1))

	f, err := LoadReader("test.nfcapd", bytes.NewReader(raw), nil, 0)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if f.NumBlocks() != len(blocks) {
		t.Fatalf("NumBlocks() = %d, want %d", f.NumBlocks(), len(blocks))
	}
	if f.Blocks[0].FileCompression != 0 {
		t.Fatalf("Blocks[0].FileCompression = %v, want None", f.Blocks[0].FileCompression)
	}
	if f.Blocks[0].Compression != 0 {
		t.Fatalf("Blocks[0].Compression = %v, want None", f.Blocks[0].Compression)
	}
	if !bytes.Equal(f.Blocks[0].Payload, blocks[0]) {
		t.Fatalf("Blocks[0].Payload = %q, want %q", f.Blocks[0].Payload, blocks[0])
	}
}

func TestLoadDispatchesHandlerPerBlock(t *testing.T) {
	t.Parallel()

	blocks := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	header := nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2, NumBlocks: uint32(len(blocks))}
	raw := encodeFile(t, header, nftype.StatsRecord{}, blocks, uniformIDs(len(blocks), nftype.DataBlockType1))

	seen := make([]bool, len(blocks))
	handler := func(i int, b *nfblock.Block) int {
		seen[i] = true
		return 0
	}

	if _, err := LoadReader("t", bytes.NewReader(raw), handler, 2); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("handler never dispatched for block %d", i)
		}
	}
}

func TestLoadAggregatesWorstHandlerStatus(t *testing.T) {
	t.Parallel()

	blocks := [][]byte{[]byte("a"), []byte("b")}
	header := nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2, NumBlocks: uint32(len(blocks))}
	raw := encodeFile(t, header, nftype.StatsRecord{}, blocks, uniformIDs(len(blocks), nftype.DataBlockType1))

	handler := func(i int, b *nfblock.Block) int {
		if i == 1 {
			b.Status = -9
			return -9
		}
		return 0
	}

	_, err := LoadReader("t", bytes.NewReader(raw), handler, 2)
	if !errors.Is(err, nferrors.ErrCodec) {
		t.Fatalf("LoadReader with faulting handler: err = %v, want ErrCodec", err)
	}
}

func TestLoadToleratesBlockCountOvercount(t *testing.T) {
	t.Parallel()

	blocks := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	header := nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2, NumBlocks: 1}
	raw := encodeFile(t, header, nftype.StatsRecord{}, blocks, uniformIDs(len(blocks), nftype.DataBlockType1))

	f, err := LoadReader("t", bytes.NewReader(raw), nil, 0)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if f.NumBlocks() != 3 {
		t.Fatalf("NumBlocks() = %d, want 3", f.NumBlocks())
	}
	if f.Header.NumBlocks != 3 {
		t.Fatalf("Header.NumBlocks = %d, want 3", f.Header.NumBlocks)
	}
}

func TestLoadFailsOnBlockCountUndercount(t *testing.T) {
	t.Parallel()

	blocks := [][]byte{[]byte("a")}
	header := nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2, NumBlocks: 5}
	raw := encodeFile(t, header, nftype.StatsRecord{}, blocks, uniformIDs(len(blocks), nftype.DataBlockType1))

	_, err := LoadReader("t", bytes.NewReader(raw), nil, 0)
	if !errors.Is(err, nferrors.ErrFormat) {
		t.Fatalf("LoadReader undercounted file: err = %v, want ErrFormat", err)
	}
}

func TestLoadFailsOnTruncatedPayload(t *testing.T) {
	t.Parallel()

	blocks := [][]byte{[]byte("a full block payload")}
	header := nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2, NumBlocks: uint32(len(blocks))}
	raw := encodeFile(t, header, nftype.StatsRecord{}, blocks, uniformIDs(len(blocks), nftype.DataBlockType1))

	truncated := raw[:len(raw)-5]
	_, err := LoadReader("t", bytes.NewReader(truncated), nil, 0)
	if !errors.Is(err, nferrors.ErrShortRead) {
		t.Fatalf("LoadReader truncated payload: err = %v, want ErrShortRead", err)
	}
}

func TestLoadFailsOnShortHeader(t *testing.T) {
	t.Parallel()

	_, err := LoadReader("t", bytes.NewReader([]byte{1, 2, 3}), nil, 0)
	if err == nil {
		t.Fatal("expected error for short file header")
	}
}

func TestCatalogBlockNeverCarriesFileCompression(t *testing.T) {
	t.Parallel()

	blocks := [][]byte{[]byte("catalog payload")}
	header := nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2, Flags: nftype.FlagLZ4Compressed, NumBlocks: 1}
	raw := encodeFile(t, header, nftype.StatsRecord{}, blocks, uniformIDs(1, nftype.CatalogBlock))

	f, err := LoadReader("t", bytes.NewReader(raw), nil, 0)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if f.Blocks[0].Compression != 0 {
		t.Fatalf("catalog block Compression = %v, want None", f.Blocks[0].Compression)
	}
}

func TestSaveAsRejectsEmptyFile(t *testing.T) {
	t.Parallel()

	f := &File{}
	err := SaveAs(f, filepath.Join(t.TempDir(), "out.nfcapd"))
	if !errors.Is(err, nferrors.ErrPrecondition) {
		t.Fatalf("SaveAs empty file: err = %v, want ErrPrecondition", err)
	}
}

func TestSaveAsRejectsFaultedBlock(t *testing.T) {
	t.Parallel()

	b := nfblock.New()
	b.Payload = []byte("x")
	b.Header.Size = 1
	b.Status = -1
	f := &File{Blocks: []*nfblock.Block{b}}

	err := SaveAs(f, filepath.Join(t.TempDir(), "out.nfcapd"))
	if !errors.Is(err, nferrors.ErrPrecondition) {
		t.Fatalf("SaveAs faulted block: err = %v, want ErrPrecondition", err)
	}
}

func TestSaveAsSetsFileFlagFromFirstBlock(t *testing.T) {
	t.Parallel()

	b1 := nfblock.New()
	b1.Header.ID = nftype.DataBlockType1
	b1.Payload = []byte("hello")
	b1.Header.Size = uint32(len(b1.Payload))
	b1.Compression = codec.LZ4

	f := &File{
		Header: nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2},
		Blocks: []*nfblock.Block{b1},
	}

	path := filepath.Join(t.TempDir(), "out.nfcapd")
	if err := SaveAs(f, path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if f.Name != path {
		t.Fatalf("Name = %q, want %q", f.Name, path)
	}
	if f.Header.Flags&nftype.FlagLZ4Compressed == 0 {
		t.Fatalf("Flags = 0x%x, want LZ4 bit set", f.Header.Flags)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	reread, err := LoadReader(path, bytes.NewReader(raw), nil, 0)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reread.NumBlocks() != 1 {
		t.Fatalf("reloaded NumBlocks() = %d, want 1", reread.NumBlocks())
	}
	if !bytes.Equal(reread.Blocks[0].Payload, b1.Payload) {
		t.Fatalf("reloaded payload = %q, want %q", reread.Blocks[0].Payload, b1.Payload)
	}
}

func TestSaveRoundTripsToOriginalName(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inplace.nfcapd")
	b := nfblock.New()
	b.Header.ID = nftype.DataBlockType1
	b.Payload = []byte("data")
	b.Header.Size = uint32(len(b.Payload))

	f := &File{
		Header: nftype.FileHeader{Magic: nftype.Magic, Version: nftype.LayoutVersion2},
		Blocks: []*nfblock.Block{b},
		Name:   path,
	}
	if err := Save(f); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Save did not write to Name: %v", err)
	}
}

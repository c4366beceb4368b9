package nfcli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nfcompress/nfcompress-go/internal/codec"
	"github.com/nfcompress/nfcompress-go/internal/nfblock"
	"github.com/nfcompress/nfcompress-go/internal/nfconfig"
	"github.com/nfcompress/nfcompress-go/internal/nfengine"
	"github.com/nfcompress/nfcompress-go/internal/nffile"
	"github.com/nfcompress/nfcompress-go/internal/nflog"
)

// Recompress is the `nfrecompress` command: it rewrites each file in
// place at a chosen compression level, or follows a YAML batch config
// when --config is given.
type Recompress struct {
	Codec  string `short:"c" long:"codec" description:"Target codec" choice:"none" choice:"lzo" choice:"bz2" choice:"lz4" choice:"lzma"`
	Level  int    `short:"l" long:"level" description:"Codec level for bz2/lzma (default 9 for bz2, 6 for lzma)"`
	Config string `long:"config" description:"YAML batch config listing {path, codec, level} entries"`
	Debug  bool   `short:"d" long:"debug" description:"Enable debug logging"`

	Args struct {
		Files []string `positional-arg-name:"file" description:"Input nfdump file(s)"`
	} `positional-args:"yes"`
}

// BatchEntry is one line of a --config YAML batch file.
type BatchEntry struct {
	Path  string `yaml:"path"`
	Codec string `yaml:"codec"`
	Level int    `yaml:"level"`
}

// Execute runs the recompress command.
func (c *Recompress) Execute(args []string) error {
	if c.Debug {
		nflog.SetDebug(true)
	}

	if c.Config != "" {
		entries, err := loadBatchConfig(c.Config)
		if err != nil {
			return err
		}
		for _, e := range entries {
			cd, ok := codec.ParseName(e.Codec)
			if !ok {
				return fmt.Errorf("nfcli: recompress: unknown codec %q in %s", e.Codec, c.Config)
			}
			if err := RunRecompress(e.Path, cd, e.Level); err != nil {
				return err
			}
		}
		return nil
	}

	cd, ok := codec.ParseName(c.Codec)
	if !ok {
		return fmt.Errorf("nfcli: recompress: -c is required and must be one of none|lzo|bz2|lz4|lzma")
	}
	for _, path := range c.Args.Files {
		if err := RunRecompress(path, cd, c.Level); err != nil {
			return err
		}
	}
	return nil
}

func loadBatchConfig(path string) ([]BatchEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("nfcli: read batch config %s: %w", path, err)
	}
	var entries []BatchEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("nfcli: parse batch config %s: %w", path, err)
	}
	return entries, nil
}

// RunRecompress loads path, decompresses every block, recompresses every
// block with cd at the given level (0 selects the codec's own default
// preset), and saves the result back to path.
func RunRecompress(path string, cd codec.Codec, level int) error {
	presets, err := nfconfig.NewPresets()
	if err != nil {
		return fmt.Errorf("nfcli: recompress %s: %w", path, err)
	}
	applyLevel(presets, cd, level)

	decompressHandler := func(i int, b *nfblock.Block) int {
		if err := nfengine.Decompress(b); err != nil {
			nflog.Errorf("%s: decompress block %d: %v", path, i, err)
			b.Status = -1
			return -1
		}
		return 0
	}

	f, err := nffile.Load(path, decompressHandler, 0)
	if err != nil {
		return fmt.Errorf("nfcli: recompress %s: %w", path, err)
	}

	for i, b := range f.Blocks {
		if err := nfengine.Compress(b, cd, presets); err != nil {
			nflog.Errorf("%s: compress block %d: %v", path, i, err)
			b.Status = -1
			return fmt.Errorf("nfcli: recompress %s: block %d: %w", path, i, err)
		}
	}

	if err := nffile.SaveAs(f, path); err != nil {
		return fmt.Errorf("nfcli: recompress %s: %w", path, err)
	}
	return nil
}

// applyLevel overrides the relevant preset field when level was
// explicitly given (non-zero); 0 leaves the codec's compiled-in default.
func applyLevel(presets *nfconfig.Presets, cd codec.Codec, level int) {
	if level == 0 {
		return
	}
	switch cd {
	case codec.BZ2:
		presets.BZ2Preset = level
	case codec.LZMA:
		presets.LZMAPreset = level
	}
}

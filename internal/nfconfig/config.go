// Package nfconfig holds the process-wide codec tuning presets. They are
// mutated only before a worker pool starts (see nfdispatch) and are plain
// reads thereafter.
package nfconfig

import "github.com/creasty/defaults"

// Presets groups the two codec-tuning parameters that affect encoding.
type Presets struct {
	BZ2Preset  int `default:"9"`
	LZMAPreset int `default:"6"`
}

// NewPresets returns a Presets populated with its compiled-in defaults.
func NewPresets() (*Presets, error) {
	p := &Presets{}
	if err := defaults.Set(p); err != nil {
		return nil, err
	}
	return p, nil
}
